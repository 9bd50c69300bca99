package router

import (
	"github.com/labstack/echo/v4"

	"velora/internal/adapter/api/handler"
	"velora/internal/adapter/api/middleware"
)

func SetupCategoryRouter(e *echo.Echo, categoryHandler *handler.CategoryHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	categories := e.Group("/api/v1/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/slug/:slug", categoryHandler.GetCategory)

	admin := e.Group("/api/v1/admin/categories")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.POST("", categoryHandler.CreateCategory)
	admin.PATCH("/:id", categoryHandler.UpdateCategory)
	admin.DELETE("/:id", categoryHandler.DeleteCategory)
}
