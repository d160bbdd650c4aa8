package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smart-defence/academy-console/pkg/response"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/editor"
	"github.com/smart-defence/academy-console/internal/form"
	"github.com/smart-defence/academy-console/internal/render"
	"github.com/smart-defence/academy-console/internal/service"
)

// StudentHandler serves the tabbed student editor.
type StudentHandler struct {
	api      *api.Client
	bundles  *service.BundleService
	validate *validator.Validate
	renderer *render.Renderer
	metrics  *service.MetricsService
	logger   *zap.Logger
}

// NewStudentHandler creates the student handler.
func NewStudentHandler(apiClient *api.Client, bundles *service.BundleService, validate *validator.Validate, renderer *render.Renderer, metrics *service.MetricsService, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		api:      apiClient,
		bundles:  bundles,
		validate: validate,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}
}

// RegisterRoutes wires the student editor routes.
func (h *StudentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/students/new", h.NewPage)
	rg.GET("/students/:id/edit", h.EditPage)
	rg.GET("/students/:id/tabs/:tab", h.TabContent)
	rg.POST("/students", h.Create)
	rg.PUT("/students/:id", h.Update)
	rg.POST("/students/:id/check-field", h.CheckField)
	rg.POST("/students/:id/subscription/cancel", h.CancelSubscription)
	rg.POST("/students/:id/close", h.Close)
}

func (h *StudentHandler) newEditor(c *gin.Context, initialTab string) (*editor.StudentEditor, error) {
	return editor.NewStudentEditor(editor.StudentDeps{
		API:      h.api.WithToken(tokenFrom(c)),
		Bundles:  h.bundles,
		Validate: h.validate,
		Renderer: h.renderer,
		Logger:   h.logger,
		Confirm:  confirmFrom(c),
	}, initialTab)
}

// NewPage starts a blank student record without touching the platform.
func (h *StudentHandler) NewPage(c *gin.Context) {
	e, err := h.newEditor(c, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := e.Open(c.Request.Context(), ""); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"student": e.Student(), "activeTab": e.Tabs().Active()})
}

// EditPage opens the editor on a student. The tab query parameter deep
// links into a specific tab; its content loads on activation.
func (h *StudentHandler) EditPage(c *gin.Context) {
	e, err := h.newEditor(c, c.Query("tab"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := e.Open(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"student":   e.Student(),
		"tabs":      e.Tabs().Names(),
		"activeTab": e.Tabs().Active(),
	})
}

// TabContent loads one tab of the editor and returns its content.
func (h *StudentHandler) TabContent(c *gin.Context) {
	e, err := h.newEditor(c, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := e.Open(ctx, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	tab := c.Param("tab")
	if err := e.Tabs().Switch(ctx, tab); err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountTabLoad("student", tab)

	switch tab {
	case editor.TabFinancial:
		html, err := e.FinancialHTML()
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	case editor.TabDocuments:
		response.JSON(c, http.StatusOK, e.Documents())
	case editor.TabHistory:
		response.JSON(c, http.StatusOK, e.History())
	case editor.TabCourses:
		response.JSON(c, http.StatusOK, e.Progress())
	default:
		response.JSON(c, http.StatusOK, e.Student())
	}
}

// Create persists a new student from the profile form.
func (h *StudentHandler) Create(c *gin.Context) {
	h.save(c, "")
}

// Update persists changes to an existing student.
func (h *StudentHandler) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

func (h *StudentHandler) save(c *gin.Context, id string) {
	e, err := h.newEditor(c, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	e.Resume(id)
	// The posted form is itself the unsaved delta.
	e.MarkDirty()

	errs, err := e.SaveProfile(c.Request.Context(), postedValues(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	h.bundles.Invalidate(c.Request.Context(), e.Student().ID)
	if id == "" {
		response.Created(c, e.Student())
		return
	}
	response.JSON(c, http.StatusOK, e.Student())
}

// Close runs the navigation guard before the page leaves the editor.
// The page reports pending edits with dirty=true and the user's answer
// to the prompt with confirm=true.
func (h *StudentHandler) Close(c *gin.Context) {
	e, err := h.newEditor(c, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	e.Resume(c.Param("id"))
	if c.Query("dirty") == "true" {
		e.MarkDirty()
	}
	if err := e.Leave(); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"closed": true})
}

type checkFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// CheckField validates a single profile field for inline feedback.
func (h *StudentHandler) CheckField(c *gin.Context) {
	var req checkFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, []form.FieldError{{Field: "field", Message: "campo não informado"}})
		return
	}
	if fieldErr := form.CheckStudentField(h.validate, req.Field, req.Value); fieldErr != nil {
		response.ValidationFailed(c, []form.FieldError{*fieldErr})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"valid": true})
}

// CancelSubscription cancels the student's subscription. The page sends
// confirm=true after the user accepts the prompt.
func (h *StudentHandler) CancelSubscription(c *gin.Context) {
	e, err := h.newEditor(c, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := e.Open(ctx, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	if err := e.Tabs().Switch(ctx, editor.TabFinancial); err != nil {
		response.Error(c, err)
		return
	}
	if err := e.CancelSubscription(ctx); err != nil {
		response.Error(c, err)
		return
	}
	h.bundles.Invalidate(ctx, c.Param("id"))
	response.NoContent(c)
}
