package model

import "time"

type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl"`
	Ingredients []string  `gorm:"serializer:json" json:"ingredients"`
	Steps       []string  `gorm:"serializer:json" json:"steps"`
	CreatedBy   string    `gorm:"size:128" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
