package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/service"
)

type stubOrderService struct {
	service.OrderService

	placed      *dto.PlaceOrderRequest
	placeResult *service.PlaceResult
	placeErr    error
	webhookResp *dto.WebhookResponse
}

func (s *stubOrderService) Place(_ context.Context, _ uint, req *dto.PlaceOrderRequest) (*service.PlaceResult, error) {
	s.placed = req
	return s.placeResult, s.placeErr
}

func (s *stubOrderService) HandlePaymentWebhook(_ context.Context, _ *dto.PaymentWebhookPayload) *dto.WebhookResponse {
	return s.webhookResp
}

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, _ []byte, originalName, folder string) (string, error) {
	return fmt.Sprintf("https://storage.test/%s/%s", folder, originalName), nil
}

func TestPaymentNotifyAlwaysAnswers200(t *testing.T) {
	e := echo.New()
	h := NewOrderHandler(&stubOrderService{
		webhookResp: &dto.WebhookResponse{Success: true, Message: "Payment confirmed", OrderID: 7},
	}, stubUploader{})

	// Valid payload: the service response passes through.
	req := httptest.NewRequest(http.MethodPost, "/api/orders/payment-notify",
		strings.NewReader(`{"payableTransactionId":"TXN-1","statusMessage":"SUCCESS"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.PaymentNotify(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment confirmed")

	// Unparseable payload: still 200, failure reported in the body.
	req = httptest.NewRequest(http.MethodPost, "/api/orders/payment-notify",
		strings.NewReader(`{not json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	require.NoError(t, h.PaymentNotify(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required fields")
}

func TestPlaceDuplicateOrderResponse(t *testing.T) {
	e := echo.New()
	h := NewOrderHandler(&stubOrderService{
		placeResult: &service.PlaceResult{
			Order:     &model.Order{ID: 12},
			Duplicate: true,
		},
	}, stubUploader{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"items":[{"product":1,"quantity":1,"price":942}]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Place(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Order already created", body["message"])
	assert.EqualValues(t, 12, body["orderId"])
}

func TestPlaceMultipartBindsItemsAndProof(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		placeResult: &service.PlaceResult{Order: &model.Order{ID: 3}},
	}
	h := NewOrderHandler(stub, stubUploader{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("items", `[{"product":4,"quantity":2,"price":942}]`))
	require.NoError(t, w.WriteField("total", "1884"))
	require.NoError(t, w.WriteField("paymentMethod", model.PaymentMethodBankTransfer))
	part, err := w.CreateFormFile("proofImage", "slip.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()

	require.NoError(t, h.Place(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, stub.placed)
	require.Len(t, stub.placed.Items, 1)
	assert.Equal(t, uint(4), stub.placed.Items[0].Product)
	assert.Equal(t, 2, stub.placed.Items[0].Quantity)
	assert.InDelta(t, 1884.0, stub.placed.Total, 0.001)
	assert.Equal(t, model.PaymentMethodBankTransfer, stub.placed.PaymentMethod)
	assert.Equal(t, "https://storage.test/orders/proofs/slip.jpg", stub.placed.ProofImageURL)
	assert.Empty(t, stub.placed.ProofPdfURL)
}

func TestPlaceMultipartPdfProofFillsBothFields(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		placeResult: &service.PlaceResult{Order: &model.Order{ID: 5}},
	}
	h := NewOrderHandler(stub, stubUploader{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("items", `[{"product":1,"quantity":1,"price":942}]`))
	part, err := w.CreateFormFile("proofPdf", "slip.PDF")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()

	require.NoError(t, h.Place(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, stub.placed)
	// PDF proofs are readable through either field.
	assert.Equal(t, "https://storage.test/orders/proofs/slip.PDF", stub.placed.ProofImageURL)
	assert.Equal(t, stub.placed.ProofImageURL, stub.placed.ProofPdfURL)
}
