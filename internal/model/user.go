package model

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FirstName  string    `gorm:"size:64;not null" json:"firstName"`
	LastName   string    `gorm:"size:64;not null" json:"lastName"`
	Email      string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	UserName   string    `gorm:"size:64;uniqueIndex;not null" json:"userName"`
	Password   string    `gorm:"size:128;not null" json:"-"`
	Address    string    `gorm:"size:256" json:"address"`
	PostalCode string    `gorm:"size:16" json:"postalCode"`
	ContactNo  string    `gorm:"size:32" json:"contactNo"`
	Role       string    `gorm:"size:16;not null;default:customer" json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
