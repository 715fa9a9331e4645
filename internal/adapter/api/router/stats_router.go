package router

import (
	"flicklit/internal/adapter/api/handler"
	"flicklit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupStatsRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	statsHandler := handler.GetStatsHandler()

	statsGroup := e.Group("/v1/stats")
	statsGroup.Use(authMiddleware.Authenticate)

	statsGroup.GET("", statsHandler.GetSummary)
}
