package model

import "time"

type Invoice struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"index;not null" json:"orderId"`
	Date          time.Time `json:"date"`
	DueDate       time.Time `gorm:"not null" json:"dueDate"`
	Total         float64   `gorm:"not null" json:"total"`
	PaymentStatus string    `gorm:"size:16;default:Pending" json:"paymentStatus"` // Paid | Pending | Failed
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
