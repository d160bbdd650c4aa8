package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/form"
	"github.com/smart-defence/academy-console/internal/render"
)

func newTestRouter(t *testing.T, platformURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := render.New()
	require.NoError(t, err)

	h := NewCourseHandler(
		api.New(api.Options{BaseURL: platformURL}),
		form.NewValidator(),
		renderer,
		nil,
	)

	router := gin.New()
	h.RegisterRoutes(router.Group("/"))
	return router
}

func TestCourseNewPageRendersWithoutPlatform(t *testing.T) {
	// Closed server: any platform call would fail the request.
	platform := httptest.NewServer(nil)
	platform.Close()
	router := newTestRouter(t, platform.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses/new", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Novo Curso")
}

func TestCourseCreateValidationEnvelope(t *testing.T) {
	platform := httptest.NewServer(nil)
	platform.Close()
	router := newTestRouter(t, platform.URL)

	body := url.Values{"name": {""}, "duration": {"0"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Errors  []form.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	fields := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "duration")
}

func TestCourseCreatePersistsAndReturnsCreated(t *testing.T) {
	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/courses", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"id":"c7","name":"Boxe","level":"BEGINNER","category":"ADULT","duration":12}}`))
	}))
	defer platform.Close()
	router := newTestRouter(t, platform.URL)

	body := url.Values{
		"name":     {"Boxe"},
		"level":    {"BEGINNER"},
		"category": {"ADULT"},
		"duration": {"12"},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"c7"`)
}

func TestCourseUpdateRejectionPropagatesMessage(t *testing.T) {
	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"nome já utilizado"}`))
	}))
	defer platform.Close()
	router := newTestRouter(t, platform.URL)

	body := url.Values{
		"name":     {"Boxe"},
		"level":    {"BEGINNER"},
		"category": {"ADULT"},
		"duration": {"12"},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/courses/c1", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "nome já utilizado")
}

func TestCourseCloseGuardsPendingEdits(t *testing.T) {
	platform := httptest.NewServer(nil)
	platform.Close()
	router := newTestRouter(t, platform.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses/c1/close?dirty=true", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code, "pending edits block leaving until confirmed")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/courses/c1/close?dirty=true&confirm=true", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/courses/c1/close", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "a clean editor closes without prompting")
}

func TestCourseRemoveTechniqueNeedsConfirm(t *testing.T) {
	calls := 0
	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":true}`))
	}))
	defer platform.Close()
	router := newTestRouter(t, platform.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/courses/c1/techniques/t1", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, calls, "unconfirmed removal must not reach the platform")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/courses/c1/techniques/t1?confirm=true", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Greater(t, calls, 0)
}
