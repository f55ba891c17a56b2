package model

import "time"

const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewing   = "reviewing"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

// ValidApplicationStatus reports whether s is one of the recruitment
// pipeline stages.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing,
		ApplicationStatusShortlisted, ApplicationStatusRejected,
		ApplicationStatusHired:
		return true
	}
	return false
}

type Application struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	FullName            string    `gorm:"size:128;not null" json:"fullName"`
	Email               string    `gorm:"size:128;index;not null" json:"email"`
	Phone               string    `gorm:"size:32;not null" json:"phone"`
	Position            string    `gorm:"size:64;index;not null" json:"position"`
	LinkedIn            string    `gorm:"size:256" json:"linkedIn"`
	MotivationStatement string    `gorm:"type:text" json:"motivationStatement"`
	CoverLetter         string    `gorm:"type:text" json:"coverLetter"`
	CVUrl               string    `gorm:"size:512" json:"cvUrl"`
	VideoURL            string    `gorm:"size:512" json:"videoUrl"`
	VideoType           string    `gorm:"size:16" json:"videoType"` // drive | youtube | direct
	ConsentGiven        bool      `json:"consentGiven"`
	AdminNotes          string    `gorm:"type:text" json:"adminNotes"`
	Status              string    `gorm:"size:16;index;default:pending" json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
