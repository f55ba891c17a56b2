package model

import "time"

// PendingPayment holds a gateway confirmation that arrived before the order
// it pays for was created. Order placement consults this table by
// transaction id and, on a hit, creates the order directly as Paid.
type PendingPayment struct {
	TransactionID   string    `gorm:"primaryKey;size:64;not null" json:"payableTransactionId"`
	PayableOrderID  string    `gorm:"size:64" json:"payableOrderId"`
	PaymentScheme   string    `gorm:"size:32" json:"paymentScheme"`
	PaymentType     int       `json:"paymentType"`
	TransactionType string    `gorm:"size:32" json:"transactionType"`
	ReceivedAt      time.Time `json:"receivedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}
