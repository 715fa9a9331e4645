package router

import (
	"flicklit/internal/adapter/api/handler"
	"flicklit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupCatalogRouter initializes the public catalog discovery routes
func SetupCatalogRouter(e *echo.Echo, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	catalogHandler := handler.GetCatalogHandler()

	catalogGroup := e.Group("/v1/catalog")
	catalogGroup.Use(rateLimitMiddleware.Limit("catalog_search"))

	catalogGroup.GET("/trending", catalogHandler.Trending)
	catalogGroup.GET("/search", catalogHandler.Search)
	catalogGroup.GET("/:id", catalogHandler.GetItem)
}
