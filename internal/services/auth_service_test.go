package services

import (
	"errors"
	"testing"

	"github.com/promopartout/backend/internal/config"
	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/models"
)

func TestRegisterAndLoginMerchant(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())

	reg, err := auth.RegisterMerchant(&dto.RegisterRequest{
		BusinessName: "Boulangerie Martin",
		Email:        "martin@example.com",
		Password:     "croissant42",
		Address:      "12 Rue du Pain, Lyon",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if reg.Token == "" {
		t.Fatal("expected a token on registration")
	}
	if reg.Merchant.ID == 0 {
		t.Fatal("expected an assigned merchant id")
	}

	login, err := auth.LoginMerchant(&dto.LoginRequest{Email: "martin@example.com", Password: "croissant42"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.Token == "" {
		t.Fatal("expected a token on login")
	}
	if login.Merchant.BusinessName != "Boulangerie Martin" {
		t.Fatalf("business name = %q", login.Merchant.BusinessName)
	}
}

func TestRegisterMerchantMissingFields(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())

	_, err := auth.RegisterMerchant(&dto.RegisterRequest{Email: "x@example.com", Password: "p"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("got %v, want ErrMissingFields", err)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())

	registerMerchant(t, auth, "First Shop", "dup@example.com")

	_, err := auth.RegisterMerchant(&dto.RegisterRequest{
		BusinessName: "Second Shop",
		Email:        "dup@example.com",
		Password:     "other-pass",
		Address:      "Elsewhere",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}

	var count int64
	db.Model(&models.Merchant{}).Where("email = ?", "dup@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("merchant rows = %d, want 1", count)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())

	registerMerchant(t, auth, "Shop", "known@example.com")

	_, errUnknown := auth.LoginMerchant(&dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	_, errWrongPw := auth.LoginMerchant(&dto.LoginRequest{Email: "known@example.com", Password: "wrong"})

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatal("login failure messages must not reveal whether the account exists")
	}
}

func TestMerchantAndAdminEmailNamespacesAreIndependent(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())

	cfg := &config.Config{
		BootstrapAdminEmail:    "shared@example.com",
		BootstrapAdminPassword: "admin-pass",
		BootstrapAdminName:     "Ops",
	}
	if err := auth.EnsureBootstrapAdmin(cfg); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	// Same email registers fine as a merchant.
	registerMerchant(t, auth, "Shop", "shared@example.com")
}

func TestAdminLogin(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())

	cfg := &config.Config{
		BootstrapAdminEmail:    "admin@example.com",
		BootstrapAdminPassword: "admin-pass",
		BootstrapAdminName:     "Ops",
	}
	if err := auth.EnsureBootstrapAdmin(cfg); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	resp, err := auth.LoginAdmin(&dto.LoginRequest{Email: "admin@example.com", Password: "admin-pass"})
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Admin.Name != "Ops" {
		t.Fatalf("admin name = %q", resp.Admin.Name)
	}

	if _, err := auth.LoginAdmin(&dto.LoginRequest{Email: "admin@example.com", Password: "bad"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestEnsureBootstrapAdminIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())

	cfg := &config.Config{
		BootstrapAdminEmail:    "admin@example.com",
		BootstrapAdminPassword: "admin-pass",
		BootstrapAdminName:     "Ops",
	}
	if err := auth.EnsureBootstrapAdmin(cfg); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	if err := auth.EnsureBootstrapAdmin(cfg); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count != 1 {
		t.Fatalf("admin rows = %d, want 1", count)
	}
}

func TestEnsureBootstrapAdminSkipsWithoutCredentials(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())

	if err := auth.EnsureBootstrapAdmin(&config.Config{}); err != nil {
		t.Fatalf("bootstrap without credentials should be a no-op, got %v", err)
	}

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count != 0 {
		t.Fatalf("admin rows = %d, want 0", count)
	}
}

func TestPasswordsNeverStoredInPlaintext(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())

	registerMerchant(t, auth, "Shop", "hash@example.com")

	var merchant models.Merchant
	if err := db.Where("email = ?", "hash@example.com").First(&merchant).Error; err != nil {
		t.Fatalf("merchant lookup failed: %v", err)
	}
	if merchant.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
	if merchant.PasswordHash == "" {
		t.Fatal("password hash missing")
	}
}
