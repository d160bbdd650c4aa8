package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"
	"github.com/smart-defence/academy-console/pkg/response"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/editor"
	"github.com/smart-defence/academy-console/internal/models"
	"github.com/smart-defence/academy-console/internal/render"
	"github.com/smart-defence/academy-console/internal/service"
)

// LessonPlanHandler serves the lesson-plan editor pages and the AI
// generation action.
type LessonPlanHandler struct {
	api          *api.Client
	validate     *validator.Validate
	renderer     *render.Renderer
	metrics      *service.MetricsService
	logger       *zap.Logger
	aiEnabled    bool
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewLessonPlanHandler creates the lesson-plan handler.
func NewLessonPlanHandler(apiClient *api.Client, validate *validator.Validate, renderer *render.Renderer, metrics *service.MetricsService, logger *zap.Logger, aiEnabled bool, pollInterval, pollTimeout time.Duration) *LessonPlanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonPlanHandler{
		api:          apiClient,
		validate:     validate,
		renderer:     renderer,
		metrics:      metrics,
		logger:       logger,
		aiEnabled:    aiEnabled,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// RegisterRoutes wires the lesson-plan routes.
func (h *LessonPlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses/:id/lessons/:week/:lesson", h.EditPage)
	rg.POST("/lesson-plans", h.Save)
	rg.PUT("/lesson-plans/:id", h.Save)
	rg.POST("/lesson-plans/:id/techniques", h.AttachTechniques)
	rg.POST("/courses/:id/lessons/:week/:lesson/generate", h.Generate)
}

func (h *LessonPlanHandler) newEditor(c *gin.Context) *editor.LessonPlanEditor {
	return editor.NewLessonPlanEditor(editor.LessonPlanDeps{
		API:          h.api.WithToken(tokenFrom(c)),
		Validate:     h.validate,
		Renderer:     h.renderer,
		Logger:       h.logger,
		Confirm:      confirmFrom(c),
		PollInterval: h.pollInterval,
		PollTimeout:  h.pollTimeout,
	})
}

func slotParams(c *gin.Context) (week, lesson int) {
	week, _ = strconv.Atoi(c.Param("week"))
	lesson, _ = strconv.Atoi(c.Param("lesson"))
	return week, lesson
}

// EditPage loads one lesson slot and returns the plan with its rendered
// notes.
func (h *LessonPlanHandler) EditPage(c *gin.Context) {
	week, lesson := slotParams(c)
	e := h.newEditor(c)
	if err := e.Open(c.Request.Context(), c.Param("id"), week, lesson); err != nil {
		response.Error(c, err)
		return
	}
	notes, err := e.NotesHTML()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"plan": e.Plan(), "notesHtml": notes})
}

// Save validates and persists the submitted lesson-plan form.
func (h *LessonPlanHandler) Save(c *gin.Context) {
	e := h.newEditor(c)
	e.Resume(c.Param("id"))
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
	response.JSON(c, http.StatusOK, e.Plan())
}

type attachTechniquesRequest struct {
	TechniqueIDs []string `json:"techniqueIds" binding:"required"`
}

// AttachTechniques links techniques to a saved lesson plan.
func (h *LessonPlanHandler) AttachTechniques(c *gin.Context) {
	var req attachTechniquesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "selecione ao menos uma técnica"))
		return
	}

	e := h.newEditor(c)
	e.Resume(c.Param("id"))
	if err := e.AttachTechniques(c.Request.Context(), req.TechniqueIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, e.Plan().Techniques)
}

// Generate runs the AI generation flow for one lesson slot and returns
// the generated draft. The draft is not saved; the page shows it for
// review first.
func (h *LessonPlanHandler) Generate(c *gin.Context) {
	if !h.aiEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "geração assistida desabilitada"))
		return
	}
	week, lesson := slotParams(c)
	courseID := c.Param("id")

	e := h.newEditor(c)
	if err := e.Open(c.Request.Context(), courseID, week, lesson); err != nil {
		response.Error(c, err)
		return
	}

	req := editor.GenerateRequest{
		CourseID: courseID,
		Week:     week,
		Lesson:   lesson,
		Prompt:   c.Query("prompt"),
	}
	err := e.Generate(c.Request.Context(), req, func(job models.GenerationJob) {
		h.logger.Debug("generation progress",
			zap.String("job_id", job.ID),
			zap.String("status", job.Status),
			zap.Int("progress", job.Progress))
	})
	if err != nil {
		h.metrics.CountGeneration(models.GenerationFailed)
		response.Error(c, err)
		return
	}
	h.metrics.CountGeneration(models.GenerationCompleted)
	response.JSON(c, http.StatusOK, e.Plan())
}
