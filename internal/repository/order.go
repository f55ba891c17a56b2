package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"canela-backend/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
	FindByUserID(ctx context.Context, userID uint) ([]*model.Order, error)
	// FindByTransactionID returns the order carrying the gateway
	// transaction id, paid or not.
	FindByTransactionID(ctx context.Context, transactionID string) (*model.Order, error)
	// FindPaidByTransactionID is the placement idempotency lookup: only a
	// Paid order with this transaction id counts as a duplicate.
	FindPaidByTransactionID(ctx context.Context, transactionID string) (*model.Order, error)
	FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Order, error)
	ConfirmPayment(ctx context.Context, orderID uint, payload *model.PendingPayment) error
	Updates(ctx context.Context, id uint, fields map[string]interface{}) (*model.Order, error)
	Delete(ctx context.Context, id uint) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{db: db}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) FindAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepoImpl) FindByUserID(ctx context.Context, userID uint) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepoImpl) FindByTransactionID(ctx context.Context, transactionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("payable_transaction_id = ?", transactionID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) FindPaidByTransactionID(ctx context.Context, transactionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("payable_transaction_id = ? AND payment_status = ?", transactionID, model.PaymentStatusPaid).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) ConfirmPayment(ctx context.Context, orderID uint, payload *model.PendingPayment) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_status":       model.PaymentStatusPaid,
			"payable_order_id":     payload.PayableOrderID,
			"payment_scheme":       payload.PaymentScheme,
			"payment_type":         payload.PaymentType,
			"transaction_type":     payload.TransactionType,
			"payment_confirmed_at": now,
			"updated_at":           now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepoImpl) Updates(ctx context.Context, id uint, fields map[string]interface{}) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("id = ?", id).
			Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Preload("Items").First(&order, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Order{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
