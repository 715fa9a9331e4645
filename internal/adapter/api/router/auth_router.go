package router

import (
	"flicklit/internal/adapter/api/handler"
	"flicklit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	// Public routes
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)

	// Protected routes
	protected := e.Group("/v1/users")
	protected.Use(authMiddleware.Authenticate)

	protected.GET("/me", authHandler.GetProfile)
	protected.PATCH("/me/nickname", authHandler.UpdateNickname)
}
