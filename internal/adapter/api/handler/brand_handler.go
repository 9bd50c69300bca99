package handler

import (
	"github.com/labstack/echo/v4"

	"velora/internal/usecase"
	"velora/pkg/response"
	"velora/pkg/utils"
)

type BrandHandler struct {
	brandUseCase *usecase.BrandUseCase
}

func NewBrandHandler(brandUseCase *usecase.BrandUseCase) *BrandHandler {
	return &BrandHandler{brandUseCase: brandUseCase}
}

func (h *BrandHandler) ListBrands(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	result, err := h.brandUseCase.ListBrands(c.Request().Context(), usecase.BrandQuery{
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		ActiveOnly: c.QueryParam("active") == "true",
		Search:     c.QueryParam("search"),
		SortBy:     c.QueryParam("sortBy"),
		SortOrder:  c.QueryParam("sortOrder"),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

func (h *BrandHandler) GetBrand(c echo.Context) error {
	brand, err := h.brandUseCase.GetBrandBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, brand)
}
