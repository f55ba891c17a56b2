package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/dto"
	"canela-backend/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	invoice, err := h.invoiceService.Create(ctx, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	invoices, err := h.invoiceService.List(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	invoice, err := h.invoiceService.Get(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	invoice, err := h.invoiceService.Update(ctx, id, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.invoiceService.Delete(ctx, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Invoice deleted successfully"})
}
