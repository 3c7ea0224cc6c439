package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDeviceIDRequired = errors.New("device_id is required")
	ErrDeviceNotFound   = errors.New("mobile device not found")
)

// DeviceService owns the anonymous mobile installation registry.
type DeviceService struct {
	db *gorm.DB
}

func NewDeviceService(db *gorm.DB) *DeviceService {
	return &DeviceService{db: db}
}

// RegisterOrTouch creates the device row on first sight and refreshes
// metadata and last_seen_at on every later call. Idempotent either way.
func (s *DeviceService) RegisterOrTouch(req *dto.RegisterDeviceRequest) (*dto.RegisterDeviceResponse, error) {
	if req.DeviceID == "" {
		return nil, ErrDeviceIDRequired
	}

	now := time.Now()

	var existing models.MobileDevice
	err := s.db.Where("device_id = ?", req.DeviceID).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"device_info":  req.DeviceInfo,
			"app_version":  req.AppVersion,
			"platform":     req.Platform,
			"last_seen_at": now,
			"is_active":    true,
		}
		if len(req.Metadata) > 0 {
			updates["metadata"] = req.Metadata
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to refresh device: %w", err)
		}
		return &dto.RegisterDeviceResponse{
			Message:  "device refreshed",
			DeviceID: req.DeviceID,
			Created:  false,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	device := models.MobileDevice{
		DeviceID:   req.DeviceID,
		DeviceInfo: req.DeviceInfo,
		AppVersion: req.AppVersion,
		Platform:   req.Platform,
		Metadata:   req.Metadata,
		LastSeenAt: now,
		IsActive:   true,
	}
	if err := s.db.Create(&device).Error; err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}

	return &dto.RegisterDeviceResponse{
		Message:  "device registered",
		DeviceID: req.DeviceID,
		Created:  true,
	}, nil
}

// Heartbeat refreshes last_seen_at for a known device.
func (s *DeviceService) Heartbeat(deviceID string) error {
	if deviceID == "" {
		return ErrDeviceIDRequired
	}

	result := s.db.Model(&models.MobileDevice{}).
		Where("device_id = ?", deviceID).
		Updates(map[string]interface{}{
			"last_seen_at": time.Now(),
			"is_active":    true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// DeviceCounts summarizes installation liveness for reporting. The
// windows are computed at query time; nothing is stored.
type DeviceCounts struct {
	Total     int64
	Active    int64
	Last24h   int64
	Last7Days int64
}

func (s *DeviceService) Counts() (*DeviceCounts, error) {
	var c DeviceCounts
	now := time.Now()

	m := s.db.Model(&models.MobileDevice{})
	if err := m.Count(&c.Total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.MobileDevice{}).
		Where("is_active = ?", true).Count(&c.Active).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.MobileDevice{}).
		Where("is_active = ? AND last_seen_at >= ?", true, now.Add(-24*time.Hour)).
		Count(&c.Last24h).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.MobileDevice{}).
		Where("is_active = ? AND last_seen_at >= ?", true, now.Add(-7*24*time.Hour)).
		Count(&c.Last7Days).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// RecentInstalls returns the newest installations for the dashboard.
func (s *DeviceService) RecentInstalls(limit int) ([]dto.RecentInstall, error) {
	var devices []models.MobileDevice
	if err := s.db.Order("first_install_at DESC, id DESC").Limit(limit).Find(&devices).Error; err != nil {
		return nil, err
	}

	out := make([]dto.RecentInstall, len(devices))
	for i, d := range devices {
		out[i] = dto.RecentInstall{
			DeviceID:       d.DeviceID,
			Platform:       d.Platform,
			AppVersion:     d.AppVersion,
			FirstInstallAt: d.FirstInstallAt.UTC().Format(time.RFC3339),
		}
	}
	return out, nil
}

// MarkInactiveOlderThan flips is_active off for devices not seen since
// the cutoff. Rows are kept; only the flag changes.
func (s *DeviceService) MarkInactiveOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Model(&models.MobileDevice{}).
		Where("is_active = ? AND last_seen_at < ?", true, cutoff).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// StartInactivitySweep downgrades silent devices on an hourly tick
// until done is closed.
func (s *DeviceService) StartInactivitySweep(inactiveAfter time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := s.MarkInactiveOlderThan(time.Now().Add(-inactiveAfter))
				if err != nil {
					slog.Error("device inactivity sweep failed", "error", err)
				} else if n > 0 {
					slog.Info("device inactivity sweep completed", "deactivated", n)
				}
			case <-done:
				return
			}
		}
	}()
}
