package router

import (
	"flicklit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupCatalogRouter(e, rateLimitMiddleware)
	SetupMediaRouter(e, authMiddleware, rateLimitMiddleware)
	SetupStatsRouter(e, authMiddleware)
	SetupAchievementRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}
