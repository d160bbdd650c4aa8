package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/form"
	"github.com/smart-defence/academy-console/internal/models"
	"github.com/smart-defence/academy-console/internal/render"
)

// CourseDeps are the collaborators a course editor session needs. All of
// them are injected; sessions share nothing.
type CourseDeps struct {
	API      *api.Client
	Validate *validator.Validate
	Renderer *render.Renderer
	Logger   *zap.Logger
	Confirm  ConfirmFunc
	Navigate func(url string)
}

// CourseEditor drives one course editing session.
type CourseEditor struct {
	deps  CourseDeps
	dirty *DirtyTracker

	mu          sync.Mutex
	course      models.Course
	martialArts []models.MartialArt
	schedule    []models.ScheduledLesson
	techniques  []models.CourseTechnique
	isNew       bool
}

// NewCourseEditor builds an editor session. State starts empty until Open.
func NewCourseEditor(deps CourseDeps) *CourseEditor {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &CourseEditor{
		deps:  deps,
		dirty: NewDirtyTracker(deps.Confirm),
	}
}

// Open loads the course identified by id, or starts a blank draft when id
// is empty. New mode performs no platform calls at all.
func (e *CourseEditor) Open(ctx context.Context, id string) error {
	if id == "" {
		e.mu.Lock()
		e.course = models.Course{
			Category:       "ADULT",
			ClassesPerWeek: 2,
			MinAge:         16,
			OrderIndex:     1,
			Sequence:       1,
			IsActive:       true,
		}
		e.isNew = true
		e.schedule = nil
		e.techniques = nil
		e.mu.Unlock()
		e.dirty.Reset()
		return nil
	}

	envelope, err := e.deps.API.Get(ctx, "/api/courses/"+id)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrNotFound, envelope.Message)
	}
	var course models.Course
	if err := envelope.Decode(&course); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode course")
	}

	e.mu.Lock()
	e.course = course
	e.isNew = false
	e.mu.Unlock()
	e.dirty.Reset()

	if err := e.loadSchedule(ctx, id); err != nil {
		return err
	}
	return nil
}

// Resume points the editor at an already known course without fetching
// it, used by save endpoints that carry the full form in the request.
func (e *CourseEditor) Resume(id string) {
	e.mu.Lock()
	e.course = models.Course{ID: id}
	e.isNew = id == ""
	e.mu.Unlock()
}

// LoadMartialArts fetches the modality list for the course form dropdown.
func (e *CourseEditor) LoadMartialArts(ctx context.Context) error {
	envelope, err := e.deps.API.Get(ctx, "/api/martial-arts")
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	var arts []models.MartialArt
	if err := envelope.Decode(&arts); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode martial arts")
	}
	e.mu.Lock()
	e.martialArts = arts
	e.mu.Unlock()
	return nil
}

// loadSchedule fetches the lesson plans, then the technique assignments,
// and merges them by lesson number. A techniques failure degrades the
// schedule to plain lessons instead of failing the whole load.
func (e *CourseEditor) loadSchedule(ctx context.Context, id string) error {
	envelope, err := e.deps.API.Get(ctx, "/api/courses/"+id+"/lesson-plans")
	if err != nil {
		return err
	}
	var summaries []models.LessonSummary
	if envelope.Success {
		if err := envelope.Decode(&summaries); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode lesson plans")
		}
	}

	byLesson := map[int][]models.Technique{}
	techEnvelope, err := e.deps.API.Get(ctx, "/api/courses/"+id+"/lesson-techniques")
	if err != nil || !techEnvelope.Success {
		e.deps.Logger.Warn("lesson techniques unavailable, rendering schedule without them",
			zap.String("course_id", id), zap.Error(err))
	} else {
		var assignments []models.LessonTechniques
		if decodeErr := techEnvelope.Decode(&assignments); decodeErr == nil {
			for _, a := range assignments {
				byLesson[a.LessonNumber] = a.Techniques
			}
		}
	}

	schedule := make([]models.ScheduledLesson, 0, len(summaries))
	for _, s := range summaries {
		schedule = append(schedule, models.ScheduledLesson{
			LessonSummary: s,
			Techniques:    byLesson[s.Lesson],
		})
	}

	e.mu.Lock()
	e.schedule = schedule
	e.mu.Unlock()
	return nil
}

// LoadTechniques fetches the course technique links.
func (e *CourseEditor) LoadTechniques(ctx context.Context) error {
	e.mu.Lock()
	id := e.course.ID
	e.mu.Unlock()
	if id == "" {
		return nil
	}

	envelope, err := e.deps.API.Get(ctx, "/api/courses/"+id+"/techniques")
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	var links []models.CourseTechnique
	if err := envelope.Decode(&links); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode techniques")
	}
	e.mu.Lock()
	e.techniques = links
	e.mu.Unlock()
	return nil
}

// MarkDirty records an edit on the open draft.
func (e *CourseEditor) MarkDirty() { e.dirty.MarkDirty() }

// IsDirty reports whether the draft has unsaved changes.
func (e *CourseEditor) IsDirty() bool { return e.dirty.IsDirty() }

// Leave runs the navigation guard.
func (e *CourseEditor) Leave() error { return e.dirty.Leave() }

// Course returns a copy of the draft.
func (e *CourseEditor) Course() models.Course {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.course
}

// Save validates the submitted form and persists the draft in a single
// request. A clean draft is refused before anything else happens;
// validation problems come back as field errors with no call made; an
// upstream rejection keeps the draft dirty.
func (e *CourseEditor) Save(ctx context.Context, v form.Values) ([]form.FieldError, error) {
	if !e.dirty.IsDirty() {
		return nil, appErrors.ErrNothingToSave
	}

	draft := form.CollectCourse(v)
	e.mu.Lock()
	draft.ID = e.course.ID
	isNew := e.isNew
	e.mu.Unlock()

	if errs := form.ValidateCourse(e.deps.Validate, draft); len(errs) > 0 {
		return errs, nil
	}

	var envelope *api.Envelope
	var err error
	if isNew {
		envelope, err = e.deps.API.Post(ctx, "/api/courses", draft)
	} else {
		envelope, err = e.deps.API.Put(ctx, "/api/courses/"+draft.ID, draft)
	}
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}

	var saved models.Course
	if err := envelope.Decode(&saved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode saved course")
	}
	if saved.ID == "" {
		saved = draft
	}

	e.mu.Lock()
	e.course = saved
	e.isNew = false
	e.mu.Unlock()
	e.dirty.Reset()

	if e.deps.Navigate != nil {
		e.deps.Navigate("/courses/" + saved.ID + "/edit")
	}
	return nil, nil
}

// LinkTechniques attaches techniques to the course.
func (e *CourseEditor) LinkTechniques(ctx context.Context, techniqueIDs []string) error {
	e.mu.Lock()
	id := e.course.ID
	e.mu.Unlock()
	if id == "" {
		return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "salve o curso antes de vincular técnicas")
	}

	body := map[string][]string{"techniqueIds": techniqueIDs}
	envelope, err := e.deps.API.Post(ctx, "/api/courses/"+id+"/techniques", body)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	return e.LoadTechniques(ctx)
}

// RemoveTechnique detaches one technique after user confirmation.
func (e *CourseEditor) RemoveTechnique(ctx context.Context, techniqueID string) error {
	if e.deps.Confirm != nil && !e.deps.Confirm("Remover esta técnica do curso?") {
		return nil
	}
	e.mu.Lock()
	id := e.course.ID
	e.mu.Unlock()

	envelope, err := e.deps.API.Delete(ctx, "/api/courses/"+id+"/techniques/"+techniqueID)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	return e.LoadTechniques(ctx)
}

// ExportJSON serialises the draft for download.
func (e *CourseEditor) ExportJSON() ([]byte, error) {
	e.mu.Lock()
	course := e.course
	e.mu.Unlock()
	return json.MarshalIndent(course, "", "  ")
}

// ImportJSON replaces the draft with an uploaded export, keeping the
// identity of the open course and marking the draft dirty.
func (e *CourseEditor) ImportJSON(data []byte) error {
	var imported models.Course
	if err := json.Unmarshal(data, &imported); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "arquivo de importação inválido")
	}
	e.mu.Lock()
	imported.ID = e.course.ID
	e.course = imported
	e.mu.Unlock()
	e.dirty.MarkDirty()
	return nil
}

// FormHTML renders the current draft as the course form.
func (e *CourseEditor) FormHTML() (string, error) {
	e.mu.Lock()
	course := e.course
	arts := e.martialArts
	e.mu.Unlock()
	return e.deps.Renderer.CourseForm(course, arts)
}

// ScheduleHTML renders the loaded schedule grid.
func (e *CourseEditor) ScheduleHTML() (string, error) {
	e.mu.Lock()
	schedule := e.schedule
	e.mu.Unlock()
	return e.deps.Renderer.ScheduleGrid(schedule)
}

// TechniquesHTML renders the loaded technique links.
func (e *CourseEditor) TechniquesHTML() (string, error) {
	e.mu.Lock()
	techniques := e.techniques
	e.mu.Unlock()
	return e.deps.Renderer.TechniquesList(techniques)
}

// Title returns the editor heading for the current mode.
func (e *CourseEditor) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isNew {
		return "Novo Curso"
	}
	return fmt.Sprintf("Editar Curso: %s", e.course.Name)
}
