package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"
)

// Envelope is the response contract for the console's JSON action endpoints.
// It mirrors the platform API envelope so page scripts handle both uniformly.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Success: false, Message: appErr.Message})
}

// ValidationFailed reports every failing field at once so the page can
// surface all of them, not just the first.
func ValidationFailed(c *gin.Context, errs interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: appErrors.ErrValidation.Message,
		Errors:  errs,
	})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
