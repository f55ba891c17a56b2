package repository

import (
	"context"

	"gorm.io/gorm"

	"canela-backend/internal/model"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id uint) (*model.Invoice, error)
	FindAll(ctx context.Context) ([]*model.Invoice, error)
	Updates(ctx context.Context, id uint, fields map[string]interface{}) (*model.Invoice, error)
	Delete(ctx context.Context, id uint) error
}

type invoiceRepoImpl struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepoImpl{db: db}
}

func (r *invoiceRepoImpl) Create(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepoImpl) FindByID(ctx context.Context, id uint) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.WithContext(ctx).First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepoImpl) FindAll(ctx context.Context) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	err := r.db.WithContext(ctx).Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepoImpl) Updates(ctx context.Context, id uint, fields map[string]interface{}) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Invoice{}).
			Where("id = ?", id).
			Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&invoice, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepoImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Invoice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
