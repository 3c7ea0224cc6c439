package services

import (
	"testing"
	"time"

	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/models"
	"github.com/promopartout/backend/internal/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Merchant{},
		&models.Admin{},
		&models.Promotion{},
		&models.MobileDevice{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestIssuer() *token.Issuer {
	return token.NewIssuer("test-secret", time.Hour)
}

// registerMerchant creates a merchant through the real registration path
// and returns its id.
func registerMerchant(t *testing.T, auth *AuthService, name, email string) uint {
	t.Helper()

	resp, err := auth.RegisterMerchant(&dto.RegisterRequest{
		BusinessName: name,
		Email:        email,
		Password:     "s3cret-pass",
		Address:      "1 Rue de la Paix, Paris",
	})
	if err != nil {
		t.Fatalf("failed to register merchant %s: %v", email, err)
	}
	return resp.Merchant.ID
}
