package router

import (
	"github.com/labstack/echo/v4"

	"velora/internal/adapter/api/handler"
	"velora/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, productHandler *handler.ProductHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	products := e.Group("/api/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:slug", productHandler.GetProduct)

	admin := e.Group("/api/v1/admin/products")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.POST("", productHandler.CreateProduct)
	admin.PATCH("/:id", productHandler.UpdateProduct)
	admin.DELETE("/:id", productHandler.DeleteProduct)
}
