package httphandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	r := chi.NewRouter()
	handler := HealthHandler{
		Version:   "x.y.z",
		ServiceID: "stub-server",
		ReleaseID: "1234567890abcdef",
	}
	r.Get("/health", handler.ServeHTTP)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"status": "pass",
		"version": "x.y.z",
		"service_id": "stub-server",
		"release_id": "1234567890abcdef"
	}`, w.Body.String())
}
