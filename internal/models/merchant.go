package models

import "time"

// Merchant is a registered business account. Records are immutable after
// registration; there is no update endpoint.
type Merchant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusinessName string    `gorm:"not null;size:255" json:"business_name"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Address      string    `gorm:"not null;type:text" json:"address"`
	LogoURL      *string   `gorm:"size:512" json:"logo_url"`
	CreatedAt    time.Time `json:"created_at"`
}
