package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/geo"
	"github.com/promopartout/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPromotionFields   = errors.New("title, description and address are required")
	ErrInvalidLatitude   = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude  = errors.New("longitude must be between -180 and 180")
	ErrPromotionNotFound = errors.New("promotion not found")
)

// DefaultNearbyRadiusKm applies when a proximity query omits the radius.
const DefaultNearbyRadiusKm = 1.0

type PromotionService struct {
	db *gorm.DB
}

func NewPromotionService(db *gorm.DB) *PromotionService {
	return &PromotionService{db: db}
}

// Create validates the input, snapshots the merchant's business name
// into store_name, and inserts the promotion.
func (s *PromotionService) Create(merchantID uint, req *dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	if req.Title == "" || req.Description == "" || req.Address == "" {
		return nil, ErrPromotionFields
	}
	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	var merchant models.Merchant
	if err := s.db.First(&merchant, merchantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}

	promo := models.Promotion{
		MerchantID:  merchantID,
		Title:       req.Title,
		Description: req.Description,
		StoreName:   merchant.BusinessName,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	if err := s.db.Create(&promo).Error; err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	resp := mapPromotion(&promo)
	return &resp, nil
}

// ListByOwner returns one merchant's promotions, newest first.
func (s *PromotionService) ListByOwner(merchantID uint) ([]dto.PromotionResponse, error) {
	var promos []models.Promotion
	if err := s.db.Where("merchant_id = ?", merchantID).
		Order("created_at DESC, id DESC").
		Find(&promos).Error; err != nil {
		return nil, err
	}

	out := make([]dto.PromotionResponse, len(promos))
	for i := range promos {
		out[i] = mapPromotion(&promos[i])
	}
	return out, nil
}

// ListAllAdmin returns every promotion joined with the owning merchant's
// business name and email, newest first.
func (s *PromotionService) ListAllAdmin() ([]dto.PromotionWithMerchant, error) {
	rows, err := s.listJoined()
	if err != nil {
		return nil, err
	}

	out := make([]dto.PromotionWithMerchant, len(rows))
	for i := range rows {
		out[i] = rows[i].toDTO()
		out[i].LogoURL = nil
	}
	return out, nil
}

// ListAllMobile returns every promotion joined with the owning merchant's
// display fields for the public mobile listing, newest first.
func (s *PromotionService) ListAllMobile() ([]dto.PromotionWithMerchant, error) {
	rows, err := s.listJoined()
	if err != nil {
		return nil, err
	}

	out := make([]dto.PromotionWithMerchant, len(rows))
	for i := range rows {
		out[i] = rows[i].toDTO()
		out[i].MerchantEmail = ""
	}
	return out, nil
}

// Nearby scans every promotion and keeps those within radiusKm of the
// query point, ordered by ascending distance.
func (s *PromotionService) Nearby(lat, lng, radiusKm float64) ([]dto.NearbyPromotion, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	rows, err := s.listJoined()
	if err != nil {
		return nil, err
	}

	points := make([]geo.Point, len(rows))
	for i := range rows {
		points[i] = geo.Point{Lat: rows[i].Latitude, Lng: rows[i].Longitude}
	}

	ranked := geo.RankWithin(lat, lng, radiusKm, points)
	out := make([]dto.NearbyPromotion, len(ranked))
	for i, r := range ranked {
		joined := rows[r.Index].toDTO()
		joined.MerchantEmail = ""
		out[i] = dto.NearbyPromotion{
			PromotionWithMerchant: joined,
			DistanceKm:            r.DistanceKm,
		}
	}
	return out, nil
}

// Delete removes a promotion owned by the requesting merchant.
// Existence and ownership are checked together: deleting someone
// else's promotion reports not-found, never forbidden, so the id
// space leaks nothing.
func (s *PromotionService) Delete(id, merchantID uint) error {
	result := s.db.Where("id = ? AND merchant_id = ?", id, merchantID).Delete(&models.Promotion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

// DeleteAsAdmin removes any promotion without an ownership check.
func (s *PromotionService) DeleteAsAdmin(id uint) error {
	result := s.db.Delete(&models.Promotion{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

// DeleteMerchantCascade removes a merchant and all of its promotions in
// one transaction. Promotions go first so no orphan can survive a
// failure between the two statements.
func (s *PromotionService) DeleteMerchantCascade(merchantID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("merchant_id = ?", merchantID).Delete(&models.Promotion{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Merchant{}, merchantID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMerchantNotFound
		}
		return nil
	})
}

type promotionMerchantRow struct {
	ID           uint
	MerchantID   uint
	Title        string
	Description  string
	StoreName    string
	Address      string
	Latitude     float64
	Longitude    float64
	CreatedAt    time.Time
	BusinessName string
	Email        string
	LogoURL      *string
}

func (s *PromotionService) listJoined() ([]promotionMerchantRow, error) {
	var rows []promotionMerchantRow
	err := s.db.Table("promotions").
		Select("promotions.*, merchants.business_name, merchants.email, merchants.logo_url").
		Joins("JOIN merchants ON merchants.id = promotions.merchant_id").
		Order("promotions.created_at DESC, promotions.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *promotionMerchantRow) toDTO() dto.PromotionWithMerchant {
	return dto.PromotionWithMerchant{
		PromotionResponse: dto.PromotionResponse{
			ID:          r.ID,
			MerchantID:  r.MerchantID,
			Title:       r.Title,
			Description: r.Description,
			StoreName:   r.StoreName,
			Address:     r.Address,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		},
		BusinessName:  r.BusinessName,
		MerchantEmail: r.Email,
		LogoURL:       r.LogoURL,
	}
}

func mapPromotion(p *models.Promotion) dto.PromotionResponse {
	return dto.PromotionResponse{
		ID:          p.ID,
		MerchantID:  p.MerchantID,
		Title:       p.Title,
		Description: p.Description,
		StoreName:   p.StoreName,
		Address:     p.Address,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if lng < -180 || lng > 180 {
		return ErrInvalidLongitude
	}
	return nil
}
