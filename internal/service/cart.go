package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

type CartService interface {
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*model.Cart, error)
	GetItems(ctx context.Context, userID uint) ([]model.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uint) error
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartServiceImpl{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartServiceImpl) AddItem(ctx context.Context, userID, productID uint, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = &model.Cart{UserID: userID}
		if err := s.cartRepo.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("create cart: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	item := &model.CartItem{
		ProductID:    product.ID,
		ProductName:  product.ProductName,
		Price:        product.Price,
		Quantity:     quantity,
		ProductImage: product.ProductImage,
		AddedAt:      time.Now(),
	}
	if err := s.cartRepo.AddItem(ctx, cart.ID, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	items, totalPrice, err := s.recomputeTotal(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	cart.Items = items
	cart.TotalPrice = totalPrice
	return cart, nil
}

// recomputeTotal rebuilds the cart total from its line items and persists
// it. Runs after every cart mutation.
func (s *cartServiceImpl) recomputeTotal(ctx context.Context, cartID uint) ([]model.CartItem, float64, error) {
	items, err := s.cartRepo.FindItems(ctx, cartID)
	if err != nil {
		return nil, 0, fmt.Errorf("load cart items: %w", err)
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	totalPrice, _ := total.Float64()
	if err := s.cartRepo.SetTotal(ctx, cartID, totalPrice); err != nil {
		return nil, 0, fmt.Errorf("update cart total: %w", err)
	}
	return items, totalPrice, nil
}

func (s *cartServiceImpl) GetItems(ctx context.Context, userID uint) ([]model.CartItem, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, itemID uint) error {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return err
	}
	_, _, err = s.recomputeTotal(ctx, cart.ID)
	return err
}
