package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/dto"
	"canela-backend/internal/middleware"
	"canela-backend/internal/service"
)

type RecipeHandler struct {
	recipeService service.RecipeService
	userService   service.UserService
}

func NewRecipeHandler(recipeService service.RecipeService, userService service.UserService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		userService:   userService,
	}
}

func (h *RecipeHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	image, imageName, err := formFile(c, "image")
	if err != nil {
		return err
	}

	createdBy := ""
	if user, err := h.userService.Get(ctx, middleware.UserID(c)); err == nil {
		createdBy = user.UserName
	}

	recipe, err := h.recipeService.Create(ctx, createdBy, &req, image, imageName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	recipes, err := h.recipeService.List(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.Get(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.RecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	image, imageName, err := formFile(c, "image")
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.Update(ctx, id, &req, image, imageName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.recipeService.Delete(ctx, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Recipe deleted successfully"})
}
