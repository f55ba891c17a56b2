package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"canela-backend/internal/model"
)

// PendingPaymentRepository parks gateway confirmations that arrived before
// their order existed, so placement can pick them up later.
type PendingPaymentRepository interface {
	Upsert(ctx context.Context, pending *model.PendingPayment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*model.PendingPayment, error)
	Delete(ctx context.Context, tx *gorm.DB, transactionID string) error
}

type pendingPaymentRepoImpl struct {
	db *gorm.DB
}

func NewPendingPaymentRepository(db *gorm.DB) PendingPaymentRepository {
	return &pendingPaymentRepoImpl{db: db}
}

func (r *pendingPaymentRepoImpl) Upsert(ctx context.Context, pending *model.PendingPayment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "transaction_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"received_at": time.Now(),
		}),
	}).Create(pending).Error
}

func (r *pendingPaymentRepoImpl) FindByTransactionID(ctx context.Context, transactionID string) (*model.PendingPayment, error) {
	var pending model.PendingPayment
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&pending).Error
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

func (r *pendingPaymentRepoImpl) Delete(ctx context.Context, tx *gorm.DB, transactionID string) error {
	return tx.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&model.PendingPayment{}).Error
}
