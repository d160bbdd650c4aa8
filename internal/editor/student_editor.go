package editor

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/form"
	"github.com/smart-defence/academy-console/internal/models"
	"github.com/smart-defence/academy-console/internal/render"
)

// Student editor tab names.
const (
	TabProfile   = "profile"
	TabFinancial = "financial"
	TabDocuments = "documents"
	TabHistory   = "history"
	TabCourses   = "courses"
)

// BundleLoader fetches the student aggregate consumed by the financial
// tab. The production implementation lives in the service layer.
type BundleLoader interface {
	Load(ctx context.Context, studentID string) (models.StudentBundle, error)
}

// StudentDeps are the collaborators of a student editing session.
type StudentDeps struct {
	API      *api.Client
	Bundles  BundleLoader
	Validate *validator.Validate
	Renderer *render.Renderer
	Logger   *zap.Logger
	Confirm  ConfirmFunc
	Navigate func(url string)
}

// StudentEditor drives one student editing session across its tabs.
type StudentEditor struct {
	deps  StudentDeps
	dirty *DirtyTracker
	tabs  *TabSet

	mu        sync.Mutex
	student   models.Student
	bundle    models.StudentBundle
	documents []models.Document
	history   []models.HistoryEvent
	progress  []models.CourseProgress
	isNew     bool
}

// NewStudentEditor builds an editor session with its tab set. The initial
// tab selects via deep link; an empty initialTab starts on the profile.
func NewStudentEditor(deps StudentDeps, initialTab string) (*StudentEditor, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	e := &StudentEditor{
		deps:  deps,
		dirty: NewDirtyTracker(deps.Confirm),
	}

	tabs, err := NewTabSet(deps.Logger,
		Tab{Name: TabProfile},
		Tab{Name: TabFinancial, Load: e.loadFinancial},
		Tab{Name: TabDocuments, Load: e.loadDocuments},
		Tab{Name: TabHistory, Load: e.loadHistory},
		Tab{Name: TabCourses, Load: e.loadCourses},
	)
	if err != nil {
		return nil, err
	}
	e.tabs = tabs

	if initialTab != "" && initialTab != TabProfile {
		// Validate the deep link now; content loads on activation.
		if _, known := tabs.loaders[initialTab]; !known {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown tab "+initialTab)
		}
		tabs.mu.Lock()
		tabs.active = initialTab
		tabs.mu.Unlock()
	}
	return e, nil
}

// Tabs exposes the tab controller.
func (e *StudentEditor) Tabs() *TabSet { return e.tabs }

// Open loads the student identified by id, or starts a blank record when
// id is empty. New mode performs no platform calls.
func (e *StudentEditor) Open(ctx context.Context, id string) error {
	if id == "" {
		e.mu.Lock()
		e.student = models.Student{Category: "REGULAR", IsActive: true}
		e.isNew = true
		e.mu.Unlock()
		e.dirty.Reset()
		return nil
	}

	envelope, err := e.deps.API.Get(ctx, "/api/students/"+id)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrNotFound, envelope.Message)
	}
	var student models.Student
	if err := envelope.Decode(&student); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode student")
	}

	e.mu.Lock()
	e.student = student
	e.isNew = false
	e.mu.Unlock()
	e.dirty.Reset()
	return nil
}

// Resume points the editor at an already known student without fetching
// it, used by save endpoints that carry the full form in the request.
func (e *StudentEditor) Resume(id string) {
	e.mu.Lock()
	e.student = models.Student{ID: id}
	e.isNew = id == ""
	e.mu.Unlock()
}

// Student returns a copy of the open record.
func (e *StudentEditor) Student() models.Student {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.student
}

// Bundle returns a copy of the loaded financial aggregate.
func (e *StudentEditor) Bundle() models.StudentBundle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bundle
}

// MarkDirty records an edit on the profile tab.
func (e *StudentEditor) MarkDirty() { e.dirty.MarkDirty() }

// IsDirty reports whether the profile has unsaved changes.
func (e *StudentEditor) IsDirty() bool { return e.dirty.IsDirty() }

// Leave runs the navigation guard.
func (e *StudentEditor) Leave() error { return e.dirty.Leave() }

// SaveProfile validates and persists the profile tab form. A clean
// profile is refused before anything else happens.
func (e *StudentEditor) SaveProfile(ctx context.Context, v form.Values) ([]form.FieldError, error) {
	if !e.dirty.IsDirty() {
		return nil, appErrors.ErrNothingToSave
	}

	draft := form.CollectStudent(v)
	e.mu.Lock()
	draft.ID = e.student.ID
	isNew := e.isNew
	e.mu.Unlock()

	if errs := form.ValidateStudent(e.deps.Validate, draft); len(errs) > 0 {
		return errs, nil
	}

	var envelope *api.Envelope
	var err error
	if isNew {
		envelope, err = e.deps.API.Post(ctx, "/api/students", draft)
	} else {
		envelope, err = e.deps.API.Put(ctx, "/api/students/"+draft.ID, draft)
	}
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}

	saved := draft
	if err := envelope.Decode(&saved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode saved student")
	}

	e.mu.Lock()
	e.student = saved
	e.isNew = false
	e.mu.Unlock()
	e.dirty.Reset()

	if e.deps.Navigate != nil {
		e.deps.Navigate("/students/" + saved.ID + "/edit")
	}
	return nil, nil
}

// CancelSubscription cancels the student's active subscription after user
// confirmation, then refreshes the financial tab.
func (e *StudentEditor) CancelSubscription(ctx context.Context) error {
	e.mu.Lock()
	subscription := e.bundle.Subscription
	studentID := e.student.ID
	e.mu.Unlock()
	if subscription == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "nenhuma assinatura ativa")
	}
	if e.deps.Confirm != nil && !e.deps.Confirm("Cancelar a assinatura deste aluno?") {
		return nil
	}

	envelope, err := e.deps.API.Delete(ctx, "/api/students/"+studentID+"/subscription")
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	return e.loadFinancial(ctx)
}

func (e *StudentEditor) loadFinancial(ctx context.Context) error {
	e.mu.Lock()
	id := e.student.ID
	e.mu.Unlock()
	if id == "" {
		return nil
	}

	bundle, err := e.deps.Bundles.Load(ctx, id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.bundle = bundle
	e.mu.Unlock()
	return nil
}

func (e *StudentEditor) loadDocuments(ctx context.Context) error {
	var docs []models.Document
	if err := e.loadSection(ctx, "documents", &docs); err != nil {
		return err
	}
	e.mu.Lock()
	e.documents = docs
	e.mu.Unlock()
	return nil
}

func (e *StudentEditor) loadHistory(ctx context.Context) error {
	var events []models.HistoryEvent
	if err := e.loadSection(ctx, "history", &events); err != nil {
		return err
	}
	e.mu.Lock()
	e.history = events
	e.mu.Unlock()
	return nil
}

func (e *StudentEditor) loadCourses(ctx context.Context) error {
	var progress []models.CourseProgress
	if err := e.loadSection(ctx, "progress", &progress); err != nil {
		return err
	}
	e.mu.Lock()
	e.progress = progress
	e.mu.Unlock()
	return nil
}

func (e *StudentEditor) loadSection(ctx context.Context, section string, dest interface{}) error {
	e.mu.Lock()
	id := e.student.ID
	e.mu.Unlock()
	if id == "" {
		return nil
	}

	envelope, err := e.deps.API.Get(ctx, "/api/students/"+id+"/"+section)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	return envelope.Decode(dest)
}

// Documents returns the loaded documents tab content.
func (e *StudentEditor) Documents() []models.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.documents
}

// History returns the loaded history tab content.
func (e *StudentEditor) History() []models.HistoryEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history
}

// Progress returns the loaded courses tab content.
func (e *StudentEditor) Progress() []models.CourseProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress
}

// FinancialHTML renders the financial tab from the loaded bundle.
func (e *StudentEditor) FinancialHTML() (string, error) {
	e.mu.Lock()
	bundle := e.bundle
	e.mu.Unlock()
	return e.deps.Renderer.FinancialPanel(bundle)
}
