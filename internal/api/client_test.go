package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return New(Options{BaseURL: url, OrganizationID: "org-1", Token: "tok"})
}

func TestRequestPassesThroughEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "org-1", r.Header.Get("X-Organization-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":"c1","name":"Krav Maga"}}`))
	}))
	defer srv.Close()

	envelope, err := newTestClient(srv.URL).Get(context.Background(), "/api/courses/c1")
	require.NoError(t, err)
	assert.True(t, envelope.Success)

	var course struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, envelope.Decode(&course))
	assert.Equal(t, "Krav Maga", course.Name)
}

func TestRequestWrapsBarePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"m1","name":"Jiu-Jitsu"}]`))
	}))
	defer srv.Close()

	envelope, err := newTestClient(srv.URL).Get(context.Background(), "/api/martial-arts")
	require.NoError(t, err)
	assert.True(t, envelope.Success)

	var arts []struct{ Name string }
	require.NoError(t, envelope.Decode(&arts))
	require.Len(t, arts, 1)
}

func TestRequestHTTPErrorBecomesFailureEnvelope(t *testing.T) {
	cases := []struct {
		status  int
		message string
	}{
		{http.StatusNotFound, "not found"},
		{http.StatusBadRequest, "invalid data"},
		{http.StatusInternalServerError, "platform error"},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		envelope, err := newTestClient(srv.URL).Get(context.Background(), "/api/courses/missing")
		srv.Close()
		require.NoError(t, err, "status %d must not surface as an error", tc.status)
		assert.False(t, envelope.Success)
		assert.Equal(t, tc.message, envelope.Message)
	}
}

func TestRequestFailureEnvelopeKeepsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"nome já utilizado"}`))
	}))
	defer srv.Close()

	envelope, err := newTestClient(srv.URL).Post(context.Background(), "/api/courses", map[string]string{"name": "X"})
	require.NoError(t, err)
	assert.False(t, envelope.Success)
	assert.Equal(t, "nome já utilizado", envelope.Message)
}

func TestRequestNetworkFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv.URL).Get(context.Background(), "/api/courses")
	require.Error(t, err)
}

func TestRequestReportsOutcomeToObserver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/courses/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	type observation struct {
		method  string
		outcome string
	}
	var seen []observation
	client := New(Options{BaseURL: srv.URL, Observe: func(method, outcome string, duration time.Duration) {
		seen = append(seen, observation{method, outcome})
		assert.GreaterOrEqual(t, duration, time.Duration(0))
	}})

	_, err := client.Get(context.Background(), "/api/courses/c1")
	require.NoError(t, err)
	_, err = client.Get(context.Background(), "/api/courses/missing")
	require.NoError(t, err)

	down := httptest.NewServer(nil)
	down.Close()
	_, err = New(Options{BaseURL: down.URL, Observe: func(method, outcome string, duration time.Duration) {
		seen = append(seen, observation{method, outcome})
	}}).Post(context.Background(), "/api/courses", nil)
	require.Error(t, err)

	require.Len(t, seen, 3)
	assert.Equal(t, observation{http.MethodGet, "success"}, seen[0])
	assert.Equal(t, observation{http.MethodGet, "rejected"}, seen[1])
	assert.Equal(t, observation{http.MethodPost, "error"}, seen[2])
}

func TestWithTokenDoesNotMutateOriginal(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	base := newTestClient(srv.URL)
	scoped := base.WithToken("user-token")

	_, err := scoped.Get(context.Background(), "/api/students/s1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer user-token", seen)

	_, err = base.Get(context.Background(), "/api/students/s1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", seen)
}
