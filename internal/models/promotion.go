package models

import "time"

// Promotion is a geolocated offer owned by exactly one merchant.
// StoreName is a snapshot of the merchant's business name at creation
// time, not a live join: if merchant names ever become editable, old
// promotions keep the name they were created under.
type Promotion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MerchantID  uint      `gorm:"not null;index" json:"merchant_id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"not null;type:text" json:"description"`
	StoreName   string    `gorm:"not null;size:255" json:"store_name"`
	Address     string    `gorm:"not null;type:text" json:"address"`
	Latitude    float64   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude   float64   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}
