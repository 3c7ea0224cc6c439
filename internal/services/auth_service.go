package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/promopartout/backend/internal/config"
	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/models"
	"github.com/promopartout/backend/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("an account with this email already exists")
	// One message for unknown email and wrong password, so login
	// failures don't reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("all fields are required")
	ErrMerchantNotFound   = errors.New("merchant not found")
	ErrAdminNotFound      = errors.New("admin not found")
)

type AuthService struct {
	db     *gorm.DB
	issuer *token.Issuer
}

func NewAuthService(db *gorm.DB, issuer *token.Issuer) *AuthService {
	return &AuthService{db: db, issuer: issuer}
}

func (s *AuthService) RegisterMerchant(req *dto.RegisterRequest) (*dto.MerchantAuthResponse, error) {
	if req.BusinessName == "" || req.Email == "" || req.Password == "" || req.Address == "" {
		return nil, ErrMissingFields
	}

	var existing models.Merchant
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	merchant := models.Merchant{
		BusinessName: req.BusinessName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Address:      req.Address,
		LogoURL:      req.LogoURL,
	}

	if err := s.db.Create(&merchant).Error; err != nil {
		return nil, fmt.Errorf("failed to create merchant: %w", err)
	}

	signed, err := s.issuer.Issue(merchantPrincipal(&merchant))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.MerchantAuthResponse{
		Message:  "account created",
		Token:    signed,
		Merchant: mapMerchant(&merchant),
	}, nil
}

func (s *AuthService) LoginMerchant(req *dto.LoginRequest) (*dto.MerchantAuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	var merchant models.Merchant
	if err := s.db.Where("email = ?", req.Email).First(&merchant).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(merchant.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(merchantPrincipal(&merchant))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.MerchantAuthResponse{
		Message:  "login successful",
		Token:    signed,
		Merchant: mapMerchant(&merchant),
	}, nil
}

func (s *AuthService) LoginAdmin(req *dto.LoginRequest) (*dto.AdminAuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	var admin models.Admin
	if err := s.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(token.Principal{
		Kind:  token.KindAdmin,
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.AdminAuthResponse{
		Message: "admin login successful",
		Token:   signed,
		Admin:   dto.AdminResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email},
	}, nil
}

func (s *AuthService) GetMerchant(id uint) (*dto.MerchantResponse, error) {
	var merchant models.Merchant
	if err := s.db.First(&merchant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	resp := mapMerchant(&merchant)
	return &resp, nil
}

func (s *AuthService) GetAdmin(id uint) (*dto.AdminResponse, error) {
	var admin models.Admin
	if err := s.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &dto.AdminResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email}, nil
}

// EnsureBootstrapAdmin seeds the first admin account when the admins
// table is empty. Credentials come from configuration; nothing happens
// if they are unset or an admin already exists.
func (s *AuthService) EnsureBootstrapAdmin(cfg *config.Config) error {
	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.BootstrapAdminEmail == "" || cfg.BootstrapAdminPassword == "" {
		slog.Warn("no admin account exists and no bootstrap credentials configured")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	admin := models.Admin{
		Name:         cfg.BootstrapAdminName,
		Email:        cfg.BootstrapAdminEmail,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	slog.Info("bootstrap admin created", "email", admin.Email)
	return nil
}

func merchantPrincipal(m *models.Merchant) token.Principal {
	return token.Principal{
		Kind:  token.KindMerchant,
		ID:    m.ID,
		Email: m.Email,
		Name:  m.BusinessName,
	}
}

func mapMerchant(m *models.Merchant) dto.MerchantResponse {
	return dto.MerchantResponse{
		ID:           m.ID,
		BusinessName: m.BusinessName,
		Email:        m.Email,
		Address:      m.Address,
		LogoURL:      m.LogoURL,
		CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
