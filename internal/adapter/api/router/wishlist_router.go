package router

import (
	"github.com/labstack/echo/v4"

	"velora/internal/adapter/api/handler"
	"velora/internal/adapter/api/middleware"
)

func SetupWishlistRouter(e *echo.Echo, wishlistHandler *handler.WishlistHandler, authMiddleware *middleware.AuthMiddleware) {
	// All wishlist endpoints require authentication
	wishlist := e.Group("/api/v1/wishlist")
	wishlist.Use(authMiddleware.Authenticate)

	wishlist.GET("", wishlistHandler.GetUserWishlist)
	wishlist.GET("/count", wishlistHandler.GetWishlistCount)
	wishlist.POST("/:productId", wishlistHandler.AddToWishlist)
	wishlist.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
	wishlist.GET("/:productId/status", wishlistHandler.CheckWishlistStatus)
}
