package router

import (
	"github.com/labstack/echo/v4"

	"velora/internal/adapter/api/handler"
	"velora/internal/adapter/api/middleware"
)

type Handlers struct {
	Health   *handler.HealthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Brand    *handler.BrandHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Admin    *handler.AdminHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupHealthRouter(e, h.Health)
	SetupProductRouter(e, h.Product, authMiddleware, adminMiddleware)
	SetupCategoryRouter(e, h.Category, authMiddleware, adminMiddleware)
	SetupBrandRouter(e, h.Brand)
	SetupCartRouter(e, h.Cart, authMiddleware)
	SetupWishlistRouter(e, h.Wishlist, authMiddleware)
	SetupAdminRouter(e, h.Admin, authMiddleware, adminMiddleware)
}
