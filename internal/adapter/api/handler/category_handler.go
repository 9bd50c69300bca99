package handler

import (
	"github.com/labstack/echo/v4"

	"velora/internal/usecase"
	"velora/pkg/errors"
	"velora/pkg/response"
	"velora/pkg/utils"
)

type CategoryHandler struct {
	categoryUseCase *usecase.CategoryUseCase
}

func NewCategoryHandler(categoryUseCase *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categoryUseCase: categoryUseCase}
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	result, err := h.categoryUseCase.ListCategories(c.Request().Context(), usecase.CategoryQuery{
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

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	category, err := h.categoryUseCase.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, category)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var input usecase.CreateCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("BAD_REQUEST", "Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	category, err := h.categoryUseCase.CreateCategory(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, category)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var input usecase.UpdateCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("BAD_REQUEST", "Invalid request body", err))
	}

	category, err := h.categoryUseCase.UpdateCategory(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, category)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryUseCase.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Category deleted"})
}
