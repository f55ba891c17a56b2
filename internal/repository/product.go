package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"canela-backend/internal/model"
)

var ErrInsufficientStock = fmt.Errorf("insufficient stock")

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindAll(ctx context.Context) ([]*model.Product, error)
	Updates(ctx context.Context, id uint, fields map[string]interface{}) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
	// DecrementStock subtracts quantity atomically and fails with
	// ErrInsufficientStock when the product would go negative.
	DecrementStock(ctx context.Context, tx *gorm.DB, id uint, quantity int) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{db: db}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepoImpl) FindAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepoImpl) Updates(ctx context.Context, id uint, fields map[string]interface{}) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Product{}).
			Where("id = ?", id).
			Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&product, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepoImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, id uint, quantity int) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrInsufficientStock)
	}
	return nil
}
