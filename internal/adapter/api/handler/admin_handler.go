package handler

import (
	"github.com/labstack/echo/v4"

	"velora/internal/usecase"
	"velora/pkg/response"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase}
}

func (h *AdminHandler) GetUserAccounts(c echo.Context) error {
	result, err := h.adminUseCase.GetUserAccounts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}
