package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"
	"github.com/smart-defence/academy-console/pkg/response"

	"github.com/smart-defence/academy-console/internal/middleware"
	"github.com/smart-defence/academy-console/internal/models"
	"github.com/smart-defence/academy-console/internal/render"
	"github.com/smart-defence/academy-console/internal/service"
)

// PortalHandler serves the student portal pages.
type PortalHandler struct {
	portal   *service.PortalService
	sessions *service.SessionService
	renderer *render.Renderer
	logger   *zap.Logger
}

// NewPortalHandler creates the portal handler.
func NewPortalHandler(portal *service.PortalService, sessions *service.SessionService, renderer *render.Renderer, logger *zap.Logger) *PortalHandler {
	return &PortalHandler{portal: portal, sessions: sessions, renderer: renderer, logger: logger}
}

// RegisterRoutes wires the portal routes. All of them require a session.
func (h *PortalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/portal", h.Dashboard)
	rg.GET("/portal/schedule", h.Schedule)
	rg.GET("/portal/payments", h.Payments)
	rg.GET("/portal/ranking", h.Ranking)
	rg.POST("/portal/checkout", h.Checkout)
	rg.PUT("/portal/preferences/:key", h.SavePreference)
}

func (h *PortalHandler) studentID(c *gin.Context) (string, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok || session.StudentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "sessão sem aluno vinculado"))
		return "", false
	}
	return session.StudentID, true
}

// Dashboard renders the portal landing page.
func (h *PortalHandler) Dashboard(c *gin.Context) {
	studentID, ok := h.studentID(c)
	if !ok {
		return
	}
	dashboard, err := h.portal.Dashboard(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	html, err := h.renderer.Dashboard(dashboard)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Schedule returns the student's class schedule.
func (h *PortalHandler) Schedule(c *gin.Context) {
	studentID, ok := h.studentID(c)
	if !ok {
		return
	}
	entries, err := h.portal.Schedule(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Payments renders the student's charges.
func (h *PortalHandler) Payments(c *gin.Context) {
	studentID, ok := h.studentID(c)
	if !ok {
		return
	}
	payments, err := h.portal.Payments(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	html, err := h.renderer.PaymentsTable(payments)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Ranking renders the academy ranking board.
func (h *PortalHandler) Ranking(c *gin.Context) {
	entries, err := h.portal.Ranking(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	html, err := h.renderer.RankingTable(entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Checkout starts a plan purchase and returns the payment redirect.
func (h *PortalHandler) Checkout(c *gin.Context) {
	studentID, ok := h.studentID(c)
	if !ok {
		return
	}
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dados de compra inválidos"))
		return
	}
	result, err := h.portal.Checkout(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

type preferenceRequest struct {
	Value string `json:"value"`
}

// SavePreference persists one UI preference on the session, such as the
// last active tab.
func (h *PortalHandler) SavePreference(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req preferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "valor inválido"))
		return
	}
	if err := h.sessions.SavePreference(c.Request.Context(), session.ID, c.Param("key"), req.Value); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
