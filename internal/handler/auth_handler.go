package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"
	"github.com/smart-defence/academy-console/pkg/response"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/middleware"
	"github.com/smart-defence/academy-console/internal/models"
	"github.com/smart-defence/academy-console/internal/service"
)

// AuthHandler logs users in against the platform and manages the console
// session cookie.
type AuthHandler struct {
	api        *api.Client
	sessions   *service.SessionService
	cookieName string
	logger     *zap.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(apiClient *api.Client, sessions *service.SessionService, cookieName string, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{api: apiClient, sessions: sessions, cookieName: cookieName, logger: logger}
}

// RegisterRoutes wires login on the public group and logout behind the
// session guard.
func (h *AuthHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.POST("/auth/login", h.Login)
	authed.POST("/auth/logout", h.Logout)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResult struct {
	Token   string          `json:"token"`
	Student *models.Student `json:"student,omitempty"`
	Name    string          `json:"name,omitempty"`
	Role    string          `json:"role,omitempty"`
}

// Login authenticates against the platform and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "email e senha são obrigatórios"))
		return
	}

	envelope, err := h.api.Post(c.Request.Context(), "/api/auth/login", req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !envelope.Success {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "email ou senha incorretos"))
		return
	}

	var result loginResult
	if err := envelope.Decode(&result); err != nil || result.Token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrUpstreamRejected, "resposta de login inválida"))
		return
	}

	session := service.Session{Token: result.Token, Name: result.Name, Role: result.Role}
	if result.Student != nil {
		session.StudentID = result.Student.ID
	}
	cookie, err := h.sessions.Create(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(h.cookieName, cookie, 0, "/", "", false, true)
	response.JSON(c, http.StatusOK, gin.H{"name": session.Name, "studentId": session.StudentID})
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if session, ok := middleware.SessionFrom(c); ok {
		if err := h.sessions.Destroy(c.Request.Context(), session.ID); err != nil {
			h.logger.Warn("session destroy failed", zap.String("session_id", session.ID), zap.Error(err))
		}
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	response.NoContent(c)
}
