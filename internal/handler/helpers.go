package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smart-defence/academy-console/internal/editor"
	"github.com/smart-defence/academy-console/internal/form"
	"github.com/smart-defence/academy-console/internal/middleware"
)

// tokenFrom returns the platform token of the authenticated session, or
// empty for anonymous requests.
func tokenFrom(c *gin.Context) string {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return ""
	}
	return session.Token
}

// confirmFrom builds the confirmation callback from the request. Pages
// prompt the user first and resend the action with confirm=true.
func confirmFrom(c *gin.Context) editor.ConfirmFunc {
	confirmed := c.Query("confirm") == "true"
	return func(string) bool { return confirmed }
}

// postedValues adapts the submitted form onto the collection interface.
func postedValues(c *gin.Context) form.FormValues {
	_ = c.Request.ParseForm()
	return form.FormValues(c.Request.PostForm)
}
