package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

func TestAddItemCreatesCartAndRecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	user := seedUser(t, db, "alice", "12 Spice Lane")
	alba := seedProduct(t, db, "Alba Cinnamon", 10, 942)
	c5 := seedProduct(t, db, "C5 Special", 5, 6000)

	// Zero quantity falls back to one.
	cart, err := svc.AddItem(ctx, user.ID, alba.ID, 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.InDelta(t, 942.0, cart.TotalPrice, 0.001)

	cart, err = svc.AddItem(ctx, user.ID, c5.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.InDelta(t, 12942.0, cart.TotalPrice, 0.001)

	// Snapshot carries the product name and price at add time.
	assert.Equal(t, "C5 Special", cart.Items[1].ProductName)
	assert.InDelta(t, 6000.0, cart.Items[1].Price, 0.001)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	user := seedUser(t, db, "bob", "7 Bark Road")
	_, err := svc.AddItem(context.Background(), user.ID, 999, 1)
	assert.Error(t, err)
}

func TestRemoveItemRecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	user := seedUser(t, db, "carol", "1 Main St")
	alba := seedProduct(t, db, "Alba Cinnamon", 10, 942)
	c5 := seedProduct(t, db, "C5 Special", 5, 6000)

	_, err := svc.AddItem(ctx, user.ID, alba.ID, 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, user.ID, c5.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	require.InDelta(t, 6942.0, cart.TotalPrice, 0.001)

	var removed model.CartItem
	for _, item := range cart.Items {
		if item.ProductID == c5.ID {
			removed = item
		}
	}
	require.NoError(t, svc.RemoveItem(ctx, user.ID, removed.ID))

	items, err := svc.GetItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var reloaded model.Cart
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&reloaded).Error)
	assert.InDelta(t, 942.0, reloaded.TotalPrice, 0.001)
}

func TestRemoveItemScopedToOwnCart(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	owner := seedUser(t, db, "dora", "1 Main St")
	intruder := seedUser(t, db, "mallory", "2 Side St")
	product := seedProduct(t, db, "Alba Cinnamon", 10, 942)

	cart, err := svc.AddItem(ctx, owner.ID, product.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	// Another user's cart does not contain the item, so the delete misses.
	_, err = svc.AddItem(ctx, intruder.ID, product.ID, 1)
	require.NoError(t, err)
	err = svc.RemoveItem(ctx, intruder.ID, cart.Items[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	items, err := svc.GetItems(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
