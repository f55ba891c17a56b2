package repository

import (
	"context"

	"gorm.io/gorm"

	"canela-backend/internal/model"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	AddItem(ctx context.Context, cartID uint, item *model.CartItem) error
	SetTotal(ctx context.Context, cartID uint, total float64) error
	// DeleteItem removes one line item, scoped to the given cart so a
	// caller can only touch its own items.
	DeleteItem(ctx context.Context, cartID, itemID uint) error
	FindItems(ctx context.Context, cartID uint) ([]model.CartItem, error)
	// RemoveProducts prunes every line item for the given product ids from
	// the user's cart, inside the caller's transaction.
	RemoveProducts(ctx context.Context, tx *gorm.DB, userID uint, productIDs []uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{db: db}
}

func (r *cartRepoImpl) FindByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepoImpl) Save(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Save(cart).Error
}

func (r *cartRepoImpl) AddItem(ctx context.Context, cartID uint, item *model.CartItem) error {
	item.CartID = cartID
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepoImpl) SetTotal(ctx context.Context, cartID uint, total float64) error {
	return r.db.WithContext(ctx).Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("total_price", total).Error
}

func (r *cartRepoImpl) DeleteItem(ctx context.Context, cartID, itemID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepoImpl) FindItems(ctx context.Context, cartID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepoImpl) RemoveProducts(ctx context.Context, tx *gorm.DB, userID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}

	var cart model.Cart
	err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		// No cart to prune is not a placement failure.
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	err = tx.WithContext(ctx).
		Where("cart_id = ? AND product_id IN ?", cart.ID, productIDs).
		Delete(&model.CartItem{}).Error
	if err != nil {
		return err
	}

	// Recompute the running total from what is left.
	var remaining []model.CartItem
	if err := tx.WithContext(ctx).Where("cart_id = ?", cart.ID).Find(&remaining).Error; err != nil {
		return err
	}
	total := 0.0
	for _, item := range remaining {
		total += item.Price * float64(item.Quantity)
	}

	return tx.WithContext(ctx).Model(&model.Cart{}).
		Where("id = ?", cart.ID).
		Update("total_price", total).Error
}
