package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canela-backend/internal/client"
	"canela-backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, client.AutoMigrate(db))
	return db
}

// fakeMailer records sent messages instead of talking to SMTP.
type fakeMailer struct {
	mu       sync.Mutex
	messages []*client.Message
	fail     bool
}

func (m *fakeMailer) Send(_ context.Context, msg *client.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *fakeMailer) sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// fakeUploader returns deterministic URLs without touching cloud storage.
type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
}

func (u *fakeUploader) Upload(_ context.Context, _ []byte, originalName, folder string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	url := fmt.Sprintf("https://storage.test/%s/%s", folder, originalName)
	u.uploads = append(u.uploads, url)
	return url, nil
}

func seedUser(t *testing.T, db *gorm.DB, userName, address string) *model.User {
	t.Helper()
	user := &model.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     userName + "@example.com",
		UserName:  userName,
		Password:  "irrelevant",
		Address:   address,
		Role:      model.RoleCustomer,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, quantity int, price float64) *model.Product {
	t.Helper()
	product := &model.Product{
		ProductName:        name,
		ProductDescription: "test product",
		Quantity:           quantity,
		Price:              price,
		Availability:       "In Stock",
		Type:               model.ProductTypeStandard,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
