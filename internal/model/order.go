package model

import "time"

const (
	PaymentMethodOnline         = "online"
	PaymentMethodBankTransfer   = "bank_transfer"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

const (
	PaymentStatusNotPaid  = "Not Paid"
	PaymentStatusPending  = "Pending"
	PaymentStatusPaid     = "Paid"
	PaymentStatusFailed   = "Failed"
	PaymentStatusRefunded = "Refunded"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

type Order struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	UserID uint        `gorm:"index;not null" json:"userId"`
	Items  []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total  float64     `gorm:"not null" json:"total"`

	PaymentMethod string `gorm:"size:32" json:"paymentMethod"`
	PaymentStatus string `gorm:"size:16;index;default:Pending" json:"paymentStatus"`

	// Payable gateway fields, set for online payments. Transaction and
	// invoice ids are unique when present; NULL rows do not collide.
	PayableTransactionID *string `gorm:"size:64;uniqueIndex" json:"payableTransactionId,omitempty"`
	PayableOrderID       string  `gorm:"size:64" json:"payableOrderId,omitempty"`
	InvoiceID            *string `gorm:"size:64;uniqueIndex" json:"invoiceId,omitempty"`
	PaymentScheme        string  `gorm:"size:32" json:"paymentScheme,omitempty"`
	PaymentType          int     `json:"paymentType,omitempty"`
	TransactionType      string  `gorm:"size:32" json:"transactionType,omitempty"`

	ProofImageURL string `gorm:"size:512" json:"proofImageUrl,omitempty"`
	ProofPdfURL   string `gorm:"size:512" json:"proofPdfUrl,omitempty"`

	Status          string `gorm:"size:16;index;default:Pending" json:"status"`
	ShippingAddress string `gorm:"size:256;not null" json:"shippingAddress"`

	PaymentConfirmedAt *time.Time `json:"paymentConfirmedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index;not null" json:"-"`
	ProductID   uint    `gorm:"index;not null" json:"product"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Price       float64 `gorm:"not null" json:"price"`
	ProductName string  `gorm:"size:128" json:"productName"`
	Image       string  `gorm:"size:512" json:"image"`
}
