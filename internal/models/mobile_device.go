package models

import (
	"time"

	"gorm.io/datatypes"
)

// MobileDevice tracks an anonymous app installation, keyed by a
// client-supplied device identifier. Rows are never deleted; a sweep
// job downgrades IsActive for devices that stop reporting.
type MobileDevice struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	DeviceID       string         `gorm:"not null;size:255;uniqueIndex" json:"device_id"`
	DeviceInfo     string         `gorm:"size:512" json:"device_info,omitempty"`
	AppVersion     string         `gorm:"size:50" json:"app_version,omitempty"`
	Platform       string         `gorm:"size:50" json:"platform,omitempty"`
	Metadata       datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	FirstInstallAt time.Time      `gorm:"autoCreateTime" json:"first_install_at"`
	LastSeenAt     time.Time      `gorm:"not null;index" json:"last_seen_at"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
}

func (MobileDevice) TableName() string {
	return "mobile_users"
}
