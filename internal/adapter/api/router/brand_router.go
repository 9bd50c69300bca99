package router

import (
	"github.com/labstack/echo/v4"

	"velora/internal/adapter/api/handler"
)

func SetupBrandRouter(e *echo.Echo, brandHandler *handler.BrandHandler) {
	brands := e.Group("/api/v1/brands")
	brands.GET("", brandHandler.ListBrands)
	brands.GET("/:slug", brandHandler.GetBrand)
}
