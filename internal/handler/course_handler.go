package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smart-defence/academy-console/pkg/response"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/editor"
	"github.com/smart-defence/academy-console/internal/form"
	"github.com/smart-defence/academy-console/internal/render"
)

// CourseHandler serves the course editor pages and actions. Each request
// gets its own editor session; no state survives between requests.
type CourseHandler struct {
	api      *api.Client
	validate *validator.Validate
	renderer *render.Renderer
	logger   *zap.Logger
}

// NewCourseHandler creates the course handler.
func NewCourseHandler(apiClient *api.Client, validate *validator.Validate, renderer *render.Renderer, logger *zap.Logger) *CourseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseHandler{api: apiClient, validate: validate, renderer: renderer, logger: logger}
}

// RegisterRoutes wires the course editor routes.
func (h *CourseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses/new", h.NewPage)
	rg.GET("/courses/:id/edit", h.EditPage)
	rg.POST("/courses", h.Create)
	rg.PUT("/courses/:id", h.Update)
	rg.POST("/courses/:id/techniques", h.LinkTechniques)
	rg.DELETE("/courses/:id/techniques/:techniqueId", h.RemoveTechnique)
	rg.GET("/courses/:id/export", h.Export)
	rg.POST("/courses/:id/import", h.Import)
	rg.POST("/courses/:id/close", h.Close)
}

func (h *CourseHandler) newEditor(c *gin.Context) *editor.CourseEditor {
	return editor.NewCourseEditor(editor.CourseDeps{
		API:      h.api.WithToken(tokenFrom(c)),
		Validate: h.validate,
		Renderer: h.renderer,
		Logger:   h.logger,
		Confirm:  confirmFrom(c),
	})
}

// NewPage renders a blank course form without touching the platform.
func (h *CourseHandler) NewPage(c *gin.Context) {
	e := h.newEditor(c)
	if err := e.Open(c.Request.Context(), ""); err != nil {
		response.Error(c, err)
		return
	}
	html, err := e.FormHTML()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// EditPage renders the editor for an existing course: form, schedule grid
// and linked techniques.
func (h *CourseHandler) EditPage(c *gin.Context) {
	e := h.newEditor(c)
	ctx := c.Request.Context()

	if err := e.Open(ctx, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	if err := e.LoadMartialArts(ctx); err != nil {
		h.logger.Warn("martial arts list unavailable", zap.Error(err))
	}
	if err := e.LoadTechniques(ctx); err != nil {
		h.logger.Warn("course techniques unavailable", zap.Error(err))
	}

	formHTML, err := e.FormHTML()
	if err != nil {
		response.Error(c, err)
		return
	}
	scheduleHTML, err := e.ScheduleHTML()
	if err != nil {
		response.Error(c, err)
		return
	}
	techniquesHTML, err := e.TechniquesHTML()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(formHTML+scheduleHTML+techniquesHTML))
}

// Create persists a new course from the submitted form.
func (h *CourseHandler) Create(c *gin.Context) {
	h.save(c, "")
}

// Update persists changes to an existing course.
func (h *CourseHandler) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

func (h *CourseHandler) save(c *gin.Context, id string) {
	e := h.newEditor(c)
	e.Resume(id)
	// The posted form is itself the unsaved delta.
	e.MarkDirty()

	errs, err := e.Save(c.Request.Context(), postedValues(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}
	if id == "" {
		response.Created(c, e.Course())
		return
	}
	response.JSON(c, http.StatusOK, e.Course())
}

type linkTechniquesRequest struct {
	TechniqueIDs []string `json:"techniqueIds" binding:"required"`
}

// LinkTechniques attaches techniques to a course.
func (h *CourseHandler) LinkTechniques(c *gin.Context) {
	var req linkTechniquesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, []form.FieldError{{Field: "techniqueIds", Message: "selecione ao menos uma técnica"}})
		return
	}

	e := h.newEditor(c)
	e.Resume(c.Param("id"))
	if err := e.LinkTechniques(c.Request.Context(), req.TechniqueIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"linked": len(req.TechniqueIDs)})
}

// RemoveTechnique detaches one technique from a course. The page sends
// confirm=true after the user accepts the prompt.
func (h *CourseHandler) RemoveTechnique(c *gin.Context) {
	e := h.newEditor(c)
	e.Resume(c.Param("id"))
	if err := e.RemoveTechnique(c.Request.Context(), c.Param("techniqueId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Close runs the navigation guard before the page leaves the editor.
// The page reports pending edits with dirty=true and the user's answer
// to the prompt with confirm=true.
func (h *CourseHandler) Close(c *gin.Context) {
	e := h.newEditor(c)
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

// Export downloads the course as JSON.
func (h *CourseHandler) Export(c *gin.Context) {
	e := h.newEditor(c)
	if err := e.Open(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	data, err := e.ExportJSON()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="course.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Import replaces the draft with an uploaded JSON export and saves it.
func (h *CourseHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 1<<20))
	if err != nil {
		response.Error(c, err)
		return
	}

	e := h.newEditor(c)
	e.Resume(c.Param("id"))
	if err := e.ImportJSON(data); err != nil {
		response.Error(c, err)
		return
	}
	errs, err := e.Save(c.Request.Context(), form.CourseFields(e.Course()))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}
	response.JSON(c, http.StatusOK, e.Course())
}
