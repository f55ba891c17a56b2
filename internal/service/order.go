package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"canela-backend/internal/client"
	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

// mailTimeout is the hard cutoff for every notification send.
const mailTimeout = 15 * time.Second

const webhookStatusSuccess = "SUCCESS"

// PlaceResult reports whether placement created a new order or matched an
// existing one through an idempotency key.
type PlaceResult struct {
	Order     *model.Order
	Duplicate bool
}

type OrderService interface {
	Place(ctx context.Context, userID uint, req *dto.PlaceOrderRequest) (*PlaceResult, error)
	// HandlePaymentWebhook never fails at the transport level: the
	// response body carries the true outcome so the gateway does not
	// retry.
	HandlePaymentWebhook(ctx context.Context, payload *dto.PaymentWebhookPayload) *dto.WebhookResponse
	List(ctx context.Context) ([]*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*model.Order, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	Update(ctx context.Context, id uint, req *dto.UpdateOrderRequest) (*model.Order, error)
	Delete(ctx context.Context, id uint) error
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	pendingRepo repository.PendingPaymentRepository
	userRepo    repository.UserRepository
	mailer      client.Mailer
	operator    string
	fallback    string
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	pendingRepo repository.PendingPaymentRepository,
	userRepo repository.UserRepository,
	mailer client.Mailer,
	operatorAddress string,
	fallbackAddress string,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		pendingRepo: pendingRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		operator:    operatorAddress,
		fallback:    fallbackAddress,
	}
}

func (s *orderServiceImpl) Place(ctx context.Context, userID uint, req *dto.PlaceOrderRequest) (*PlaceResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoShippingAddress
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user.Address == "" {
		return nil, ErrNoShippingAddress
	}

	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentMethodBankTransfer
	}

	// Idempotency check A: a Paid order already carries this transaction
	// id, so the payment was reconciled before this request arrived.
	if paymentMethod == model.PaymentMethodOnline && req.TransactionID != "" {
		existing, err := s.orderRepo.FindPaidByTransactionID(ctx, req.TransactionID)
		if err == nil {
			return &PlaceResult{Order: existing, Duplicate: true}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("idempotency lookup by transaction id: %w", err)
		}
	}

	// Idempotency check B: duplicate invoice id.
	if req.InvoiceID != "" {
		existing, err := s.orderRepo.FindByInvoiceID(ctx, req.InvoiceID)
		if err == nil {
			return &PlaceResult{Order: existing, Duplicate: true}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("idempotency lookup by invoice id: %w", err)
		}
	}

	// A webhook may have confirmed this transaction before the order
	// existed; pick the parked confirmation up now.
	var pending *model.PendingPayment
	if paymentMethod == model.PaymentMethodOnline && req.TransactionID != "" {
		p, err := s.pendingRepo.FindByTransactionID(ctx, req.TransactionID)
		if err == nil {
			pending = p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pending payment lookup: %w", err)
		}
	}

	order := s.buildOrder(userID, user.Address, paymentMethod, req, pending)

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	order.Items = items
	if order.Total == 0 {
		order.Total = itemsTotal(items)
	}

	productIDs := make([]uint, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.Product
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		for _, item := range req.Items {
			if err := s.productRepo.DecrementStock(ctx, tx, item.Product, item.Quantity); err != nil {
				return err
			}
		}
		if err := s.cartRepo.RemoveProducts(ctx, tx, userID, productIDs); err != nil {
			return fmt.Errorf("prune cart: %w", err)
		}
		if pending != nil {
			if err := s.pendingRepo.Delete(ctx, tx, pending.TransactionID); err != nil {
				return fmt.Errorf("consume pending payment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.notifyOperator(order, user)

	return &PlaceResult{Order: order}, nil
}

func (s *orderServiceImpl) buildOrder(userID uint, address, paymentMethod string, req *dto.PlaceOrderRequest, pending *model.PendingPayment) *model.Order {
	order := &model.Order{
		UserID:          userID,
		Total:           req.Total,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		ProofImageURL:   req.ProofImageURL,
		ProofPdfURL:     req.ProofPdfURL,
		Status:          model.OrderStatusPending,
	}

	switch {
	case req.PaymentStatus != "":
		order.PaymentStatus = req.PaymentStatus
	case paymentMethod == model.PaymentMethodBankTransfer:
		order.PaymentStatus = model.PaymentStatusPending
	default:
		order.PaymentStatus = model.PaymentStatusPaid
	}
	// Bank transfers always await manual verification, whatever the
	// caller claimed.
	if paymentMethod == model.PaymentMethodBankTransfer {
		order.PaymentStatus = model.PaymentStatusPending
	}

	if paymentMethod == model.PaymentMethodOnline {
		if req.TransactionID != "" {
			order.PayableTransactionID = &req.TransactionID
		}
		order.PayableOrderID = req.PayableOrderID
		if req.InvoiceID != "" {
			order.InvoiceID = &req.InvoiceID
		}
		if pending != nil {
			order.PaymentStatus = model.PaymentStatusPaid
			order.PayableOrderID = pending.PayableOrderID
			order.PaymentScheme = pending.PaymentScheme
			order.PaymentType = pending.PaymentType
			order.TransactionType = pending.TransactionType
			confirmedAt := pending.ReceivedAt
			order.PaymentConfirmedAt = &confirmedAt
		} else if order.PaymentStatus == model.PaymentStatusPaid {
			now := time.Now()
			order.PaymentConfirmedAt = &now
		}
	}

	return order
}

func (s *orderServiceImpl) buildItems(ctx context.Context, inputs []dto.OrderItemInput) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, len(inputs))
	for i, input := range inputs {
		product, err := s.productRepo.FindByID(ctx, input.Product)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", input.Product, err)
		}
		image := input.Image
		if image == "" {
			image = product.ProductImage
		}
		items[i] = model.OrderItem{
			ProductID:   product.ID,
			Quantity:    input.Quantity,
			Price:       input.Price,
			ProductName: product.ProductName,
			Image:       image,
		}
	}
	return items, nil
}

func itemsTotal(items []model.OrderItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Float64()
	return f
}

func (s *orderServiceImpl) HandlePaymentWebhook(ctx context.Context, payload *dto.PaymentWebhookPayload) *dto.WebhookResponse {
	if payload.PayableTransactionID == "" || payload.StatusMessage == "" {
		return &dto.WebhookResponse{Success: false, Message: "Missing required fields"}
	}

	if payload.StatusMessage != webhookStatusSuccess {
		log.Printf("webhook: payment not successful, status=%s tx=%s", payload.StatusMessage, payload.PayableTransactionID)
		processed := false
		return &dto.WebhookResponse{Success: true, Message: "Payment not successful", Processed: &processed}
	}

	existing, err := s.orderRepo.FindByTransactionID(ctx, payload.PayableTransactionID)
	switch {
	case err == nil && existing.PaymentStatus == model.PaymentStatusPaid:
		// Re-delivered webhook: nothing to do.
		log.Printf("webhook: transaction already processed tx=%s order=%d", payload.PayableTransactionID, existing.ID)
		return &dto.WebhookResponse{Success: true, Message: "Transaction already processed", OrderID: existing.ID}

	case err == nil:
		confirmation := &model.PendingPayment{
			TransactionID:   payload.PayableTransactionID,
			PayableOrderID:  payload.PayableOrderID,
			PaymentScheme:   payload.PaymentScheme,
			PaymentType:     payload.PaymentType,
			TransactionType: payload.TxType,
		}
		if err := s.orderRepo.ConfirmPayment(ctx, existing.ID, confirmation); err != nil {
			log.Printf("webhook: confirm payment failed tx=%s: %v", payload.PayableTransactionID, err)
			return &dto.WebhookResponse{Success: false, Message: "Webhook received but processing failed"}
		}
		log.Printf("webhook: order payment confirmed order=%d", existing.ID)
		return &dto.WebhookResponse{Success: true, Message: "Payment confirmed", OrderID: existing.ID}

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Webhook beat order creation; park the confirmation so
		// placement can link it.
		err := s.pendingRepo.Upsert(ctx, &model.PendingPayment{
			TransactionID:   payload.PayableTransactionID,
			PayableOrderID:  payload.PayableOrderID,
			PaymentScheme:   payload.PaymentScheme,
			PaymentType:     payload.PaymentType,
			TransactionType: payload.TxType,
			ReceivedAt:      time.Now(),
		})
		if err != nil {
			log.Printf("webhook: store pending payment failed tx=%s: %v", payload.PayableTransactionID, err)
			return &dto.WebhookResponse{Success: false, Message: "Webhook received but processing failed"}
		}
		log.Printf("webhook: payment confirmed before order creation tx=%s", payload.PayableTransactionID)
		return &dto.WebhookResponse{
			Success:              true,
			Message:              "Webhook received, waiting for order creation",
			PayableTransactionID: payload.PayableTransactionID,
		}

	default:
		log.Printf("webhook: order lookup failed tx=%s: %v", payload.PayableTransactionID, err)
		return &dto.WebhookResponse{Success: false, Message: "Webhook received but processing failed"}
	}
}

func (s *orderServiceImpl) List(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *orderServiceImpl) ListByUser(ctx context.Context, userID uint) ([]*model.Order, error) {
	return s.orderRepo.FindByUserID(ctx, userID)
}

func (s *orderServiceImpl) Get(ctx context.Context, id uint) (*model.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *orderServiceImpl) Update(ctx context.Context, id uint, req *dto.UpdateOrderRequest) (*model.Order, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.PaymentStatus != nil {
		fields["payment_status"] = *req.PaymentStatus
	}
	return s.orderRepo.Updates(ctx, id, fields)
}

func (s *orderServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.orderRepo.Delete(ctx, id)
}

// notifyOperator emails the order to the operator inbox, retrying the
// fallback address once. Failures are logged, never surfaced.
func (s *orderServiceImpl) notifyOperator(order *model.Order, user *model.User) {
	if s.operator == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	msg := &client.Message{
		To:      s.operator,
		Subject: fmt.Sprintf("New order #%d (%s)", order.ID, order.PaymentMethod),
		HTML:    renderOrderEmail(order, user),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("order notification to %s failed: %v", s.operator, err)
		if s.fallback == "" {
			return
		}
		msg.To = s.fallback
		if err := s.mailer.Send(ctx, msg); err != nil {
			log.Printf("order notification to fallback %s failed: %v", s.fallback, err)
		}
	}
}

var orderEmailTmpl = template.Must(template.New("order").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2>New Order #{{.Order.ID}}</h2>
  <p>Customer: {{.User.FirstName}} {{.User.LastName}} ({{.User.Email}})</p>
  <p>Shipping address: {{.Order.ShippingAddress}}</p>
  <p>Payment: {{.Order.PaymentMethod}} ({{.Order.PaymentStatus}})</p>
  <table style="border-collapse: collapse; width: 100%;">
    <tr>
      <th style="padding: 8px; border: 1px solid #ddd;">Product</th>
      <th style="padding: 8px; border: 1px solid #ddd;">Quantity</th>
      <th style="padding: 8px; border: 1px solid #ddd;">Price</th>
    </tr>
    {{range .Order.Items}}
    <tr>
      <td style="padding: 8px; border: 1px solid #ddd;">{{.ProductName}}</td>
      <td style="padding: 8px; border: 1px solid #ddd;">{{.Quantity}}</td>
      <td style="padding: 8px; border: 1px solid #ddd;">{{printf "%.2f" .Price}}</td>
    </tr>
    {{end}}
  </table>
  <p><strong>Total: {{printf "%.2f" .Order.Total}}</strong></p>
</div>`))

func renderOrderEmail(order *model.Order, user *model.User) string {
	var b strings.Builder
	data := struct {
		Order *model.Order
		User  *model.User
	}{order, user}
	if err := orderEmailTmpl.Execute(&b, data); err != nil {
		log.Printf("render order email: %v", err)
		return fmt.Sprintf("New order #%d, total %.2f", order.ID, order.Total)
	}
	return b.String()
}
