package models

// MartialArt is a modality offered by the academy.
type MartialArt struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Course is the primary record edited by the course editor.
type Course struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Level          string   `json:"level"`
	Category       string   `json:"category"`
	MartialArtID   string   `json:"martialArtId,omitempty"`
	Duration       int      `json:"duration"`
	ClassesPerWeek int      `json:"classesPerWeek"`
	TotalClasses   int      `json:"totalClasses"`
	MinAge         int      `json:"minAge"`
	MaxAge         *int     `json:"maxAge,omitempty"`
	OrderIndex     int      `json:"orderIndex"`
	Sequence       int      `json:"sequence"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	IsBaseCourse   bool     `json:"isBaseCourse"`
	IsActive       bool     `json:"isActive"`
	Description    string   `json:"description,omitempty"`
	Objectives     []string `json:"objectives"`
	Prerequisites  []string `json:"prerequisites"`
	Resources      []string `json:"resources"`
}

// Technique is a drill or movement taught in lessons.
type Technique struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category,omitempty"`
	Difficulty        int    `json:"difficulty,omitempty"`
	Description       string `json:"description,omitempty"`
	AllocationMinutes int    `json:"allocationMinutes,omitempty"`
}

// LessonRef locates a lesson inside a course schedule.
type LessonRef struct {
	WeekNumber   int `json:"weekNumber"`
	LessonNumber int `json:"lessonNumber"`
}

// CourseTechnique links a technique to the lessons it appears in.
type CourseTechnique struct {
	TechniqueID string      `json:"techniqueId"`
	Technique   *Technique  `json:"technique,omitempty"`
	LessonPlans []LessonRef `json:"lessonPlans"`
}

// LessonSummary is one entry of a course schedule.
type LessonSummary struct {
	ID         string `json:"id"`
	Week       int    `json:"week"`
	Lesson     int    `json:"lesson"`
	Name       string `json:"name,omitempty"`
	ItemsCount int    `json:"itemsCount,omitempty"`
}

// LessonTechniques carries the techniques assigned to one lesson number.
type LessonTechniques struct {
	LessonNumber int         `json:"lessonNumber"`
	Techniques   []Technique `json:"techniques"`
}

// ScheduledLesson is a schedule entry merged with its techniques.
type ScheduledLesson struct {
	LessonSummary
	Techniques []Technique `json:"techniques"`
}
