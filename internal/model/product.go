package model

import "time"

const (
	ProductTypeStandard = "standard"
	ProductTypeBulk     = "bulk"
)

type Product struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ProductName        string    `gorm:"size:128;not null" json:"productName"`
	ProductDescription string    `gorm:"type:text;not null" json:"productDescription"`
	ProductImage       string    `gorm:"size:512" json:"productImage"`
	Quantity           int       `gorm:"not null" json:"quantity"`
	Price              float64   `gorm:"not null" json:"price"`
	Availability       string    `gorm:"size:32;not null" json:"availability"`
	Type               string    `gorm:"size:16;index;default:standard" json:"type"`
	Discount           float64   `json:"discount"`
	CreatedDate        time.Time `json:"createdDate"`
}
