package router

import (
	"flicklit/internal/adapter/api/handler"
	"flicklit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupMediaRouter initializes the personal collection routes
func SetupMediaRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	mediaHandler := handler.GetMediaHandler()

	// All collection endpoints require authentication
	mediaGroup := e.Group("/v1/media")
	mediaGroup.Use(authMiddleware.Authenticate)

	mediaGroup.POST("", mediaHandler.AddItem, rateLimitMiddleware.Limit("item_write"))
	mediaGroup.GET("", mediaHandler.ListCollection)
	mediaGroup.GET("/:id", mediaHandler.GetItem)
	mediaGroup.DELETE("/:id", mediaHandler.DeleteItem, rateLimitMiddleware.Limit("item_write"))

	// Field updates are debounced server-side; responses report "scheduled"
	mediaGroup.PATCH("/:id/rating", mediaHandler.UpdateRating)
	mediaGroup.PATCH("/:id/start-date", mediaHandler.UpdateStartDate)
	mediaGroup.PATCH("/:id/completion-date", mediaHandler.UpdateCompletionDate)
	mediaGroup.PATCH("/:id/note", mediaHandler.UpdateNote)
}
