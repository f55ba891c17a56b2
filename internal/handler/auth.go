package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/dto"
	"canela-backend/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.authService.Login(ctx, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
