package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(checks map[string]CheckFunc) *gin.Engine {
	r := gin.New()
	h := Health(checks)
	r.GET("/healthz", h)
	r.HEAD("/healthz", h)
	r.OPTIONS("/healthz", h)
	return r
}

func serve(r *gin.Engine, method string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, "/healthz", nil))
	return w
}

func TestHealth_GET(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no dependencies",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		{
			name:       "all healthy",
			checks:     map[string]CheckFunc{"redis": ok, "db": ok},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","checks":{"redis":"ok","db":"ok"}}`,
		},
		{
			name:       "redis down",
			checks:     map[string]CheckFunc{"redis": down, "db": ok},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","checks":{"redis":"connection refused","db":"ok"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(setupRouter(tt.checks), http.MethodGet)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		})
	}
}

func TestHealth_HEAD(t *testing.T) {
	t.Parallel()

	called := false
	w := serve(setupRouter(map[string]CheckFunc{"redis": func(context.Context) error {
		called = true
		return nil
	}}), http.MethodHead)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
	assert.False(t, called, "HEAD must not run dependency checks")
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestHealth_OPTIONS(t *testing.T) {
	t.Parallel()

	w := serve(setupRouter(nil), http.MethodOptions)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
