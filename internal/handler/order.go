package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/client"
	"canela-backend/internal/dto"
	"canela-backend/internal/middleware"
	"canela-backend/internal/model"
	"canela-backend/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
	uploader     client.Uploader
}

func NewOrderHandler(orderService service.OrderService, uploader client.Uploader) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		uploader:     uploader,
	}
}

// Place accepts both JSON bodies and multipart forms. Bank transfer
// checkouts arrive as multipart with the item list serialized into an
// "items" form field next to the proof-of-payment files.
func (h *OrderHandler) Place(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.PlaceOrderRequest
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		if err := h.bindMultipartOrder(c, &req); err != nil {
			return err
		}
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.orderService.Place(ctx, userID, &req)
	if err != nil {
		return httpError(err)
	}

	if result.Duplicate {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "Order already created",
			"orderId": result.Order.ID,
		})
	}
	return c.JSON(http.StatusCreated, result.Order)
}

func (h *OrderHandler) bindMultipartOrder(c echo.Context, req *dto.PlaceOrderRequest) error {
	ctx := c.Request().Context()

	if items := c.FormValue("items"); items != "" {
		if err := json.Unmarshal([]byte(items), &req.Items); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid items payload")
		}
	}
	if total := c.FormValue("total"); total != "" {
		v, err := strconv.ParseFloat(total, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid total")
		}
		req.Total = v
	}
	req.PaymentMethod = c.FormValue("paymentMethod")
	req.PaymentStatus = c.FormValue("paymentStatus")
	req.TransactionID = c.FormValue("transactionId")
	req.PayableOrderID = c.FormValue("payableOrderId")
	req.InvoiceID = c.FormValue("invoiceId")

	// One proof file per order, image field taking precedence. The URL
	// always lands in the image field; a PDF is mirrored into the pdf
	// field too so both readers find it.
	data, name, err := formFile(c, "proofImage")
	if err != nil {
		return err
	}
	if len(data) == 0 {
		data, name, err = formFile(c, "proofPdf")
		if err != nil {
			return err
		}
	}
	if len(data) > 0 {
		url, err := h.uploader.Upload(ctx, data, name, "orders/proofs")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not store payment proof")
		}
		req.ProofImageURL = url
		if strings.HasSuffix(strings.ToLower(name), ".pdf") {
			req.ProofPdfURL = url
		}
	}

	return nil
}

// PaymentNotify is the gateway callback. It always answers 200 so the
// gateway stops retrying; the body carries the real outcome.
func (h *OrderHandler) PaymentNotify(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.PaymentWebhookPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusOK, &dto.WebhookResponse{
			Success: false,
			Message: "Missing required fields",
		})
	}

	return c.JSON(http.StatusOK, h.orderService.HandlePaymentWebhook(ctx, &payload))
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if middleware.Role(c) == model.RoleAdmin {
		orders, err := h.orderService.List(ctx)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, orders)
	}

	orders, err := h.orderService.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.Get(ctx, id)
	if err != nil {
		return httpError(err)
	}

	// Customers can only read their own orders.
	if middleware.Role(c) != model.RoleAdmin && order.UserID != middleware.UserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.Update(ctx, id, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order updated successfully",
		"order":   order,
	})
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.orderService.Delete(ctx, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}
