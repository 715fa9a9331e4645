package router

import (
	"flicklit/internal/adapter/api/handler"
	"flicklit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAchievementRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	achievementHandler := handler.GetAchievementHandler()

	achievementGroup := e.Group("/v1/achievements")
	achievementGroup.Use(authMiddleware.Authenticate)

	achievementGroup.GET("", achievementHandler.ListForUser)
	achievementGroup.GET("/progress", achievementHandler.GetProgress)

	// Definition management is restricted to admins
	adminGroup := e.Group("/v1/admin/achievements")
	adminGroup.Use(authMiddleware.Authenticate)
	adminGroup.Use(adminMiddleware.RequireAdmin)

	adminGroup.PUT("", achievementHandler.SaveDefinition)
}
