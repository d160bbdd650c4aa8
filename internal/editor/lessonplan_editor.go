package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/form"
	"github.com/smart-defence/academy-console/internal/models"
	"github.com/smart-defence/academy-console/internal/render"
)

// LessonPlanDeps are the collaborators of a lesson-plan editing session.
// Poll timings are injected so tests can run the generation loop fast.
type LessonPlanDeps struct {
	API          *api.Client
	Validate     *validator.Validate
	Renderer     *render.Renderer
	Logger       *zap.Logger
	Confirm      ConfirmFunc
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// GenerateRequest asks the platform to draft a lesson plan.
type GenerateRequest struct {
	CourseID string `json:"courseId"`
	Week     int    `json:"week"`
	Lesson   int    `json:"lesson"`
	Prompt   string `json:"prompt,omitempty"`
}

// ProgressFunc reports generation progress to the caller.
type ProgressFunc func(job models.GenerationJob)

// LessonPlanEditor drives one lesson-plan editing session, including the
// AI-assisted generation flow.
type LessonPlanEditor struct {
	deps  LessonPlanDeps
	dirty *DirtyTracker

	mu   sync.Mutex
	plan models.LessonPlan
}

// NewLessonPlanEditor builds an editor session.
func NewLessonPlanEditor(deps LessonPlanDeps) *LessonPlanEditor {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.PollInterval <= 0 {
		deps.PollInterval = 2 * time.Second
	}
	if deps.PollTimeout <= 0 {
		deps.PollTimeout = 2 * time.Minute
	}
	return &LessonPlanEditor{
		deps:  deps,
		dirty: NewDirtyTracker(deps.Confirm),
	}
}

// Open loads the plan of one lesson slot, or starts a blank draft for the
// slot when the platform has none yet.
func (e *LessonPlanEditor) Open(ctx context.Context, courseID string, week, lesson int) error {
	path := fmt.Sprintf("/api/courses/%s/lesson-plans/week/%d/lesson/%d", courseID, week, lesson)
	envelope, err := e.deps.API.Get(ctx, path)
	if err != nil {
		return err
	}

	plan := models.LessonPlan{CourseID: courseID, Week: week, Lesson: lesson}
	if envelope.Success {
		if err := envelope.Decode(&plan); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode lesson plan")
		}
		plan.CourseID = courseID
	}

	e.mu.Lock()
	e.plan = plan
	e.mu.Unlock()
	e.dirty.Reset()
	return nil
}

// Resume points the editor at an already known plan without fetching it,
// used by save endpoints that carry the full form in the request.
func (e *LessonPlanEditor) Resume(id string) {
	e.mu.Lock()
	e.plan = models.LessonPlan{ID: id}
	e.mu.Unlock()
}

// Plan returns a copy of the draft.
func (e *LessonPlanEditor) Plan() models.LessonPlan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.plan
}

// MarkDirty records an edit on the open draft.
func (e *LessonPlanEditor) MarkDirty() { e.dirty.MarkDirty() }

// IsDirty reports whether the draft has unsaved changes.
func (e *LessonPlanEditor) IsDirty() bool { return e.dirty.IsDirty() }

// Leave runs the navigation guard.
func (e *LessonPlanEditor) Leave() error { return e.dirty.Leave() }

// Save validates and persists the submitted lesson-plan form. A clean
// draft is refused before anything else happens.
func (e *LessonPlanEditor) Save(ctx context.Context, v form.Values) ([]form.FieldError, error) {
	if !e.dirty.IsDirty() {
		return nil, appErrors.ErrNothingToSave
	}

	draft := form.CollectLessonPlan(v)
	e.mu.Lock()
	if e.plan.ID != "" {
		draft.ID = e.plan.ID
	}
	if e.plan.CourseID != "" {
		draft.CourseID = e.plan.CourseID
	}
	draft.Techniques = e.plan.Techniques
	e.mu.Unlock()

	if errs := form.ValidateLessonPlan(e.deps.Validate, draft); len(errs) > 0 {
		return errs, nil
	}

	var envelope *api.Envelope
	var err error
	if draft.ID == "" {
		envelope, err = e.deps.API.Post(ctx, "/api/lesson-plans", draft)
	} else {
		envelope, err = e.deps.API.Put(ctx, "/api/lesson-plans/"+draft.ID, draft)
	}
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}

	saved := draft
	if err := envelope.Decode(&saved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode saved lesson plan")
	}

	e.mu.Lock()
	e.plan = saved
	e.mu.Unlock()
	e.dirty.Reset()
	return nil, nil
}

// AttachTechniques links techniques to the saved plan and refreshes the
// draft's technique list from the response.
func (e *LessonPlanEditor) AttachTechniques(ctx context.Context, techniqueIDs []string) error {
	e.mu.Lock()
	id := e.plan.ID
	e.mu.Unlock()
	if id == "" {
		return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "salve a aula antes de vincular técnicas")
	}

	body := map[string][]string{"techniqueIds": techniqueIDs}
	envelope, err := e.deps.API.Post(ctx, "/api/lesson-plans/"+id+"/techniques", body)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}

	var techniques []models.Technique
	if err := envelope.Decode(&techniques); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode techniques")
	}
	if techniques != nil {
		e.mu.Lock()
		e.plan.Techniques = techniques
		e.mu.Unlock()
	}
	return nil
}

// Generate asks the platform AI to draft this lesson and polls the job
// until it finishes. Progress updates flow through onProgress; the
// completed draft replaces the open plan and is marked unsaved.
func (e *LessonPlanEditor) Generate(ctx context.Context, req GenerateRequest, onProgress ProgressFunc) error {
	envelope, err := e.deps.API.Post(ctx, "/api/ai/lesson-plans/generate", req)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	var job models.GenerationJob
	if err := envelope.Decode(&job); err != nil || job.ID == "" {
		return appErrors.New(appErrors.ErrUpstreamRejected.Code, appErrors.ErrUpstreamRejected.Status, "geração não iniciada")
	}
	if onProgress != nil {
		onProgress(job)
	}

	ctx, cancel := context.WithTimeout(ctx, e.deps.PollTimeout)
	defer cancel()

	ticker := time.NewTicker(e.deps.PollInterval)
	defer ticker.Stop()

	// Even a job reported terminal by the start call is polled once, since
	// the result only travels on the poll endpoint.
	for {
		select {
		case <-ctx.Done():
			return appErrors.Wrap(ctx.Err(), appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "geração expirou")
		case <-ticker.C:
		}

		envelope, err = e.deps.API.Get(ctx, "/api/ai/generations/"+job.ID)
		if err != nil {
			return err
		}
		if !envelope.Success {
			return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
		}
		var polled struct {
			models.GenerationJob
			Result *models.LessonPlan `json:"result,omitempty"`
		}
		if err := envelope.Decode(&polled); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode generation job")
		}
		job = polled.GenerationJob
		if onProgress != nil {
			onProgress(job)
		}
		if !job.Done() {
			continue
		}

		if job.Status == models.GenerationCompleted {
			if polled.Result == nil {
				return appErrors.New(appErrors.ErrUpstreamRejected.Code, appErrors.ErrUpstreamRejected.Status, "geração concluída sem resultado")
			}
			e.mu.Lock()
			result := *polled.Result
			result.ID = e.plan.ID
			result.CourseID = e.plan.CourseID
			result.Week = e.plan.Week
			result.Lesson = e.plan.Lesson
			e.plan = result
			e.mu.Unlock()
			e.dirty.MarkDirty()
			return nil
		}

		message := job.Message
		if message == "" {
			message = "geração de plano de aula falhou"
		}
		return appErrors.New(appErrors.ErrUpstreamRejected.Code, appErrors.ErrUpstreamRejected.Status, message)
	}
}

// NotesHTML renders the draft's markdown notes.
func (e *LessonPlanEditor) NotesHTML() (string, error) {
	e.mu.Lock()
	notes := e.plan.Notes
	e.mu.Unlock()
	html, err := e.deps.Renderer.LessonNotes(notes)
	return string(html), err
}
