package handler

import (
	"github.com/labstack/echo/v4"

	"velora/internal/usecase"
	"velora/pkg/errors"
	"velora/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

func cartIdentity(c echo.Context) usecase.CartIdentity {
	identity := usecase.CartIdentity{}
	if uid, ok := c.Get("uid").(string); ok {
		identity.UserID = uid
	}
	if sid, ok := c.Get("sid").(string); ok {
		identity.SessionID = sid
	}
	return identity
}

func (h *CartHandler) GetCart(c echo.Context) error {
	detail, err := h.cartUseCase.GetCart(c.Request().Context(), cartIdentity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, detail)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var input usecase.AddCartItemInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("BAD_REQUEST", "Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	item, err := h.cartUseCase.AddItem(c.Request().Context(), cartIdentity(c), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, item)
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("BAD_REQUEST", "Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err := h.cartUseCase.UpdateItemQuantity(c.Request().Context(), c.Param("itemId"), *req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Cart item updated"})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	err := h.cartUseCase.RemoveItem(c.Request().Context(), c.Param("itemId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Cart item removed"})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	err := h.cartUseCase.ClearCart(c.Request().Context(), c.Param("cartId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Cart cleared"})
}

// ClearAfterOrder is called by the checkout flow after order placement.
func (h *CartHandler) ClearAfterOrder(c echo.Context) error {
	err := h.cartUseCase.ClearAfterOrder(c.Request().Context(), cartIdentity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Cart cleared"})
}

// MergeCart folds the caller's guest cart into their user cart after login.
func (h *CartHandler) MergeCart(c echo.Context) error {
	uid, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}
	sessionID := c.Request().Header.Get("X-Session-Id")

	cart, err := h.cartUseCase.MergeGuestCart(c.Request().Context(), uid, sessionID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}
