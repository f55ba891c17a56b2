package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

type orderFixture struct {
	db      *gorm.DB
	service OrderService
	mailer  *fakeMailer
	orders  repository.OrderRepository
	pending repository.PendingPaymentRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := newTestDB(t)
	mailer := &fakeMailer{}

	orderRepo := repository.NewOrderRepository(db)
	pendingRepo := repository.NewPendingPaymentRepository(db)
	svc := NewOrderService(
		db,
		orderRepo,
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		pendingRepo,
		repository.NewUserRepository(db),
		mailer,
		"operator@example.com",
		"fallback@example.com",
	)

	return &orderFixture{
		db:      db,
		service: svc,
		mailer:  mailer,
		orders:  orderRepo,
		pending: pendingRepo,
	}
}

func TestPlaceOrderDecrementsStockAndPrunesCart(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "alice", "12 Spice Lane, Colombo")
	ordered := seedProduct(t, f.db, "Alba Cinnamon", 10, 942)
	kept := seedProduct(t, f.db, "C5 Special", 5, 6000)

	cart := &model.Cart{UserID: user.ID}
	require.NoError(t, f.db.Create(cart).Error)
	require.NoError(t, f.db.Create(&model.CartItem{
		CartID: cart.ID, ProductID: ordered.ID, ProductName: ordered.ProductName,
		Price: ordered.Price, Quantity: 3,
	}).Error)
	require.NoError(t, f.db.Create(&model.CartItem{
		CartID: cart.ID, ProductID: kept.ID, ProductName: kept.ProductName,
		Price: kept.Price, Quantity: 1,
	}).Error)

	result, err := f.service.Place(ctx, user.ID, &dto.PlaceOrderRequest{
		Items: []dto.OrderItemInput{
			{Product: ordered.ID, Quantity: 3, Price: ordered.Price},
		},
	})
	require.NoError(t, err)
	require.False(t, result.Duplicate)

	// No method given defaults to bank transfer, which always awaits
	// manual verification.
	assert.Equal(t, model.PaymentMethodBankTransfer, result.Order.PaymentMethod)
	assert.Equal(t, model.PaymentStatusPending, result.Order.PaymentStatus)
	assert.InDelta(t, 2826.0, result.Order.Total, 0.001)

	var product model.Product
	require.NoError(t, f.db.First(&product, ordered.ID).Error)
	assert.Equal(t, 7, product.Quantity)

	var items []model.CartItem
	require.NoError(t, f.db.Where("cart_id = ?", cart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ProductID)

	var reloaded model.Cart
	require.NoError(t, f.db.First(&reloaded, cart.ID).Error)
	assert.InDelta(t, 6000.0, reloaded.TotalPrice, 0.001)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "bob", "7 Bark Road")
	product := seedProduct(t, f.db, "Heritage Tokens", 2, 1850)

	_, err := f.service.Place(ctx, user.ID, &dto.PlaceOrderRequest{
		Items: []dto.OrderItemInput{
			{Product: product.ID, Quantity: 5, Price: product.Price},
		},
	})
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	var count int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	var reloaded model.Product
	require.NoError(t, f.db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 2, reloaded.Quantity)
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	noAddress := seedUser(t, f.db, "carol", "")
	_, err := f.service.Place(ctx, noAddress.ID, &dto.PlaceOrderRequest{
		Items: []dto.OrderItemInput{{Product: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNoShippingAddress)

	user := seedUser(t, f.db, "dave", "1 Main St")
	_, err = f.service.Place(ctx, user.ID, &dto.PlaceOrderRequest{})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = f.service.Place(ctx, user.ID, &dto.PlaceOrderRequest{
		Items: []dto.OrderItemInput{{Product: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Unknown user reads as a missing shipping address too.
	_, err = f.service.Place(ctx, 9999, &dto.PlaceOrderRequest{
		Items: []dto.OrderItemInput{{Product: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNoShippingAddress)
}

func TestPlaceOrderInfrastructureFailureIsNotValidation(t *testing.T) {
	f := newOrderFixture(t)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.service.Place(context.Background(), 1, &dto.PlaceOrderRequest{
		Items: []dto.OrderItemInput{{Product: 1, Quantity: 1}},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoShippingAddress)
}

func TestPlaceOrderBankTransferForcesPending(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "erin", "3 Cinnamon Gardens")
	product := seedProduct(t, f.db, "Alba Cinnamon", 10, 942)

	result, err := f.service.Place(ctx, user.ID, &dto.PlaceOrderRequest{
		Items:         []dto.OrderItemInput{{Product: product.ID, Quantity: 1, Price: product.Price}},
		PaymentMethod: model.PaymentMethodBankTransfer,
		PaymentStatus: model.PaymentStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, result.Order.PaymentStatus)
}

func TestPlaceOrderDuplicateInvoiceID(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "frank", "9 Harbor View")
	product := seedProduct(t, f.db, "Alba Cinnamon", 10, 942)

	first, err := f.service.Place(ctx, user.ID, &dto.PlaceOrderRequest{
		Items:         []dto.OrderItemInput{{Product: product.ID, Quantity: 1, Price: product.Price}},
		PaymentMethod: model.PaymentMethodOnline,
		InvoiceID:     "INV-1001",
	})
	require.NoError(t, err)

	second, err := f.service.Place(ctx, user.ID, &dto.PlaceOrderRequest{
		Items:         []dto.OrderItemInput{{Product: product.ID, Quantity: 1, Price: product.Price}},
		PaymentMethod: model.PaymentMethodOnline,
		InvoiceID:     "INV-1001",
	})
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Order.ID, second.Order.ID)

	// Stock was only taken once.
	var reloaded model.Product
	require.NoError(t, f.db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 9, reloaded.Quantity)
}

func TestPlaceOrderDuplicatePaidTransaction(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "grace", "4 Tea Estate Rd")
	product := seedProduct(t, f.db, "Alba Cinnamon", 10, 942)

	txID := "TXN-777"
	paid := &model.Order{
		UserID:               user.ID,
		Total:                942,
		PaymentMethod:        model.PaymentMethodOnline,
		PaymentStatus:        model.PaymentStatusPaid,
		PayableTransactionID: &txID,
		ShippingAddress:      user.Address,
		Status:               model.OrderStatusPending,
	}
	require.NoError(t, f.db.Create(paid).Error)

	result, err := f.service.Place(ctx, user.ID, &dto.PlaceOrderRequest{
		Items:         []dto.OrderItemInput{{Product: product.ID, Quantity: 1, Price: product.Price}},
		PaymentMethod: model.PaymentMethodOnline,
		TransactionID: txID,
	})
	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.Equal(t, paid.ID, result.Order.ID)
}

func TestWebhookConfirmsExistingOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "henry", "2 Fort Rd")
	txID := "TXN-100"
	order := &model.Order{
		UserID:               user.ID,
		Total:                942,
		PaymentMethod:        model.PaymentMethodOnline,
		PaymentStatus:        model.PaymentStatusPending,
		PayableTransactionID: &txID,
		ShippingAddress:      user.Address,
		Status:               model.OrderStatusPending,
	}
	require.NoError(t, f.db.Create(order).Error)

	resp := f.service.HandlePaymentWebhook(ctx, &dto.PaymentWebhookPayload{
		PayableTransactionID: txID,
		StatusMessage:        "SUCCESS",
		PayableOrderID:       "PO-1",
		PaymentScheme:        "VISA",
	})
	require.True(t, resp.Success)
	assert.Equal(t, order.ID, resp.OrderID)

	var reloaded model.Order
	require.NoError(t, f.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.PaymentStatusPaid, reloaded.PaymentStatus)
	assert.NotNil(t, reloaded.PaymentConfirmedAt)

	// Re-delivery is a no-op.
	again := f.service.HandlePaymentWebhook(ctx, &dto.PaymentWebhookPayload{
		PayableTransactionID: txID,
		StatusMessage:        "SUCCESS",
	})
	require.True(t, again.Success)
	assert.Equal(t, "Transaction already processed", again.Message)
}

func TestWebhookBeforeOrderCreation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	resp := f.service.HandlePaymentWebhook(ctx, &dto.PaymentWebhookPayload{
		PayableTransactionID: "TXN-EARLY",
		StatusMessage:        "SUCCESS",
		PayableOrderID:       "PO-9",
		PaymentScheme:        "MASTERCARD",
	})
	require.True(t, resp.Success)
	assert.Equal(t, "TXN-EARLY", resp.PayableTransactionID)

	parked, err := f.pending.FindByTransactionID(ctx, "TXN-EARLY")
	require.NoError(t, err)
	assert.Equal(t, "PO-9", parked.PayableOrderID)

	// Placement picks the parked confirmation up and consumes it.
	user := seedUser(t, f.db, "irene", "5 Galle Face")
	product := seedProduct(t, f.db, "Alba Cinnamon", 10, 942)

	result, err := f.service.Place(ctx, user.ID, &dto.PlaceOrderRequest{
		Items:         []dto.OrderItemInput{{Product: product.ID, Quantity: 1, Price: product.Price}},
		PaymentMethod: model.PaymentMethodOnline,
		TransactionID: "TXN-EARLY",
		PaymentStatus: model.PaymentStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, result.Order.PaymentStatus)
	assert.Equal(t, "PO-9", result.Order.PayableOrderID)
	assert.Equal(t, "MASTERCARD", result.Order.PaymentScheme)
	assert.NotNil(t, result.Order.PaymentConfirmedAt)

	_, err = f.pending.FindByTransactionID(ctx, "TXN-EARLY")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWebhookRejectsIncompletePayload(t *testing.T) {
	f := newOrderFixture(t)

	resp := f.service.HandlePaymentWebhook(context.Background(), &dto.PaymentWebhookPayload{})
	assert.False(t, resp.Success)
	assert.Equal(t, "Missing required fields", resp.Message)
}

func TestWebhookAcksFailedPayment(t *testing.T) {
	f := newOrderFixture(t)

	resp := f.service.HandlePaymentWebhook(context.Background(), &dto.PaymentWebhookPayload{
		PayableTransactionID: "TXN-500",
		StatusMessage:        "FAILED",
	})
	require.True(t, resp.Success)
	require.NotNil(t, resp.Processed)
	assert.False(t, *resp.Processed)
}
