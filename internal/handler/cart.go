package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/dto"
	"canela-backend/internal/middleware"
	"canela-backend/internal/service"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cart, err := h.cartService.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Item added to cart",
		"cart":    cart,
	})
}

func (h *CartHandler) GetItems(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	items, err := h.cartService.GetItems(ctx, userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.cartService.RemoveItem(ctx, middleware.UserID(c), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Item deleted from cart"})
}
