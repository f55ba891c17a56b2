package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/dto"
	"canela-backend/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	image, imageName, err := formFile(c, "image")
	if err != nil {
		return err
	}

	product, err := h.productService.Create(ctx, &req, image, imageName)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.List(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Get(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	image, imageName, err := formFile(c, "image")
	if err != nil {
		return err
	}

	product, err := h.productService.Update(ctx, id, &req, image, imageName)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": product,
	})
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(ctx, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
