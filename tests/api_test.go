package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"flicklit/internal/adapter/api/handler"
	"flicklit/internal/adapter/api/router"
)

func TestHealthCheck(t *testing.T) {
	// CheckHealth never touches the auth client, so nil is fine here
	handler.SetupHealthHandler(nil)

	e := echo.New()
	router.SetupHealthRouter(e)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running")
}
