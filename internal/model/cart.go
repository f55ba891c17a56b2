package model

import "time"

// One cart per user, enforced by the unique index on UserID.
type Cart struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice float64    `gorm:"not null" json:"totalPrice"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CartItem snapshots the product name, price and image at add time so later
// product edits do not rewrite carts.
type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CartID       uint      `gorm:"index;not null" json:"-"`
	ProductID    uint      `gorm:"index;not null" json:"productId"`
	ProductName  string    `gorm:"size:128" json:"productName"`
	Price        float64   `gorm:"not null" json:"price"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	ProductImage string    `gorm:"size:512" json:"productImage"`
	AddedAt      time.Time `json:"addedAt"`
}
