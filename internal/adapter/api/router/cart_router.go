package router

import (
	"github.com/labstack/echo/v4"

	"velora/internal/adapter/api/handler"
	"velora/internal/adapter/api/middleware"
)

func SetupCartRouter(e *echo.Echo, cartHandler *handler.CartHandler, authMiddleware *middleware.AuthMiddleware) {
	// Cart is served to both authenticated users and guests with a
	// session header.
	cart := e.Group("/api/v1/cart")
	cart.Use(authMiddleware.Identify)

	cart.GET("", cartHandler.GetCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items/:itemId", cartHandler.UpdateItem)
	cart.DELETE("/items/:itemId", cartHandler.RemoveItem)
	cart.DELETE("/:cartId", cartHandler.ClearCart)
	cart.DELETE("", cartHandler.ClearAfterOrder)

	merge := e.Group("/api/v1/cart/merge")
	merge.Use(authMiddleware.Authenticate)
	merge.POST("", cartHandler.MergeCart)
}
