package services

import (
	"time"

	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/models"
	"gorm.io/gorm"
)

const recentLimit = 5

// StatsService assembles the admin reporting surface: aggregate counts
// and recent-activity lists over the shared dataset.
type StatsService struct {
	db      *gorm.DB
	devices *DeviceService
}

func NewStatsService(db *gorm.DB, devices *DeviceService) *StatsService {
	return &StatsService{db: db, devices: devices}
}

func (s *StatsService) Dashboard() (*dto.DashboardResponse, error) {
	var merchants, promotions int64
	if err := s.db.Model(&models.Merchant{}).Count(&merchants).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Promotion{}).Count(&promotions).Error; err != nil {
		return nil, err
	}

	deviceCounts, err := s.devices.Counts()
	if err != nil {
		return nil, err
	}

	recentMerchants, err := s.recentMerchants()
	if err != nil {
		return nil, err
	}

	recentPromotions, err := s.recentPromotions()
	if err != nil {
		return nil, err
	}

	recentInstalls, err := s.devices.RecentInstalls(recentLimit)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			Merchants:          merchants,
			Promotions:         promotions,
			TotalMobileUsers:   deviceCounts.Total,
			ActiveMobileUsers:  deviceCounts.Active,
			ActiveUsersLast24h: deviceCounts.Last24h,
			ActiveUsersLast7d:  deviceCounts.Last7Days,
		},
		RecentMerchants:  recentMerchants,
		RecentPromotions: recentPromotions,
		RecentInstalls:   recentInstalls,
	}, nil
}

// ListMerchants returns every merchant with its promotion count,
// newest first.
func (s *StatsService) ListMerchants() ([]dto.MerchantWithCount, error) {
	type row struct {
		ID              uint
		BusinessName    string
		Email           string
		Address         string
		LogoURL         *string
		CreatedAt       time.Time
		PromotionsCount int64
	}

	var rows []row
	err := s.db.Table("merchants").
		Select("merchants.*, COUNT(promotions.id) AS promotions_count").
		Joins("LEFT JOIN promotions ON promotions.merchant_id = merchants.id").
		Group("merchants.id").
		Order("merchants.created_at DESC, merchants.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.MerchantWithCount, len(rows))
	for i, r := range rows {
		out[i] = dto.MerchantWithCount{
			MerchantResponse: dto.MerchantResponse{
				ID:           r.ID,
				BusinessName: r.BusinessName,
				Email:        r.Email,
				Address:      r.Address,
				LogoURL:      r.LogoURL,
				CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
			},
			PromotionsCount: r.PromotionsCount,
		}
	}
	return out, nil
}

func (s *StatsService) recentMerchants() ([]dto.MerchantResponse, error) {
	var merchants []models.Merchant
	if err := s.db.Order("created_at DESC, id DESC").Limit(recentLimit).Find(&merchants).Error; err != nil {
		return nil, err
	}

	out := make([]dto.MerchantResponse, len(merchants))
	for i := range merchants {
		out[i] = mapMerchant(&merchants[i])
	}
	return out, nil
}

func (s *StatsService) recentPromotions() ([]dto.PromotionWithMerchant, error) {
	var rows []promotionMerchantRow
	err := s.db.Table("promotions").
		Select("promotions.*, merchants.business_name, merchants.email").
		Joins("JOIN merchants ON merchants.id = promotions.merchant_id").
		Order("promotions.created_at DESC, promotions.id DESC").
		Limit(recentLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.PromotionWithMerchant, len(rows))
	for i := range rows {
		out[i] = rows[i].toDTO()
	}
	return out, nil
}
