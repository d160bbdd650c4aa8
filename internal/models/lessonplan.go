package models

// LessonPlan is the full record behind one lesson of a course schedule.
type LessonPlan struct {
	ID               string      `json:"id,omitempty"`
	CourseID         string      `json:"courseId,omitempty"`
	Week             int         `json:"week"`
	Lesson           int         `json:"lesson"`
	Name             string      `json:"name"`
	Objectives       []string    `json:"objectives"`
	WarmupMinutes    int         `json:"warmupMinutes"`
	TechniqueMinutes int         `json:"techniqueMinutes"`
	DrillMinutes     int         `json:"drillMinutes"`
	CooldownMinutes  int         `json:"cooldownMinutes"`
	Notes            string      `json:"notes,omitempty"`
	Techniques       []Technique `json:"techniques"`
}

// Generation job states reported by the platform AI endpoint.
const (
	GenerationPending   = "PENDING"
	GenerationRunning   = "RUNNING"
	GenerationCompleted = "COMPLETED"
	GenerationFailed    = "FAILED"
)

// GenerationJob tracks one AI-assisted lesson-plan generation.
type GenerationJob struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message,omitempty"`
}

// Done reports whether the job reached a terminal state.
func (j GenerationJob) Done() bool {
	return j.Status == GenerationCompleted || j.Status == GenerationFailed
}
