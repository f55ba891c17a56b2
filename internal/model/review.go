package model

import "time"

type Review struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	AuthorID   uint          `gorm:"index;not null" json:"authorId"`
	AuthorName string        `gorm:"size:128;not null" json:"authorName"`
	ProductID  *uint         `gorm:"index" json:"productId,omitempty"`
	Rating     int           `gorm:"not null" json:"rating"`
	Comment    string        `gorm:"type:text;not null" json:"comment"`
	Images     []ReviewImage `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"images"`
	Replies    []ReviewReply `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"replies"`
	Visible    bool          `gorm:"not null;default:true" json:"visible"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type ReviewImage struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	ReviewID   uint      `gorm:"index;not null" json:"-"`
	URL        string    `gorm:"size:512;not null" json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type ReviewReply struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ReviewID  uint      `gorm:"index;not null" json:"-"`
	UserID    uint      `gorm:"index" json:"userId"`
	UserName  string    `gorm:"size:128" json:"userName"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
