package services

import (
	"errors"
	"testing"

	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/models"
)

func newPromotionFixture(t *testing.T) (*PromotionService, *AuthService, uint) {
	t.Helper()
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())
	promos := NewPromotionService(db)
	merchantID := registerMerchant(t, auth, "Cafe Lumiere", "cafe@example.com")
	return promos, auth, merchantID
}

func TestCreateAndListRoundTrip(t *testing.T) {
	promos, _, merchantID := newPromotionFixture(t)

	created, err := promos.Create(merchantID, &dto.CreatePromotionRequest{
		Title:       "Two coffees for one",
		Description: "Every morning before 9am",
		Address:     "5 Rue des Lombards, Paris",
		Latitude:    48.8590,
		Longitude:   2.3490,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned promotion id")
	}
	if created.StoreName != "Cafe Lumiere" {
		t.Fatalf("store_name = %q, want merchant business name", created.StoreName)
	}

	listed, err := promos.ListByOwner(merchantID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d promotions, want 1", len(listed))
	}

	got := listed[0]
	if got.Title != created.Title || got.Description != created.Description ||
		got.Address != created.Address || got.Latitude != created.Latitude ||
		got.Longitude != created.Longitude {
		t.Fatalf("round trip mismatch: created %+v, listed %+v", created, got)
	}
}

func TestCreateValidation(t *testing.T) {
	promos, _, merchantID := newPromotionFixture(t)

	tests := []struct {
		name    string
		req     dto.CreatePromotionRequest
		wantErr error
	}{
		{"missing title", dto.CreatePromotionRequest{Description: "d", Address: "a", Latitude: 1, Longitude: 1}, ErrPromotionFields},
		{"missing description", dto.CreatePromotionRequest{Title: "t", Address: "a", Latitude: 1, Longitude: 1}, ErrPromotionFields},
		{"missing address", dto.CreatePromotionRequest{Title: "t", Description: "d", Latitude: 1, Longitude: 1}, ErrPromotionFields},
		{"latitude too high", dto.CreatePromotionRequest{Title: "t", Description: "d", Address: "a", Latitude: 91, Longitude: 0}, ErrInvalidLatitude},
		{"latitude too low", dto.CreatePromotionRequest{Title: "t", Description: "d", Address: "a", Latitude: -91, Longitude: 0}, ErrInvalidLatitude},
		{"longitude too high", dto.CreatePromotionRequest{Title: "t", Description: "d", Address: "a", Latitude: 0, Longitude: 181}, ErrInvalidLongitude},
		{"longitude too low", dto.CreatePromotionRequest{Title: "t", Description: "d", Address: "a", Latitude: 0, Longitude: -181}, ErrInvalidLongitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := promos.Create(merchantID, &tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateForUnknownMerchant(t *testing.T) {
	promos, _, _ := newPromotionFixture(t)

	_, err := promos.Create(9999, &dto.CreatePromotionRequest{
		Title: "t", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
	})
	if !errors.Is(err, ErrMerchantNotFound) {
		t.Fatalf("got %v, want ErrMerchantNotFound", err)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	promos, auth, merchantA := newPromotionFixture(t)
	merchantB := registerMerchant(t, auth, "Rival Shop", "rival@example.com")

	created, err := promos.Create(merchantA, &dto.CreatePromotionRequest{
		Title: "A's deal", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// B sees nothing of A's.
	listed, err := promos.ListByOwner(merchantB)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("merchant B lists %d of A's promotions", len(listed))
	}

	// B's delete of A's promotion reports not-found, not forbidden.
	if err := promos.Delete(created.ID, merchantB); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("cross-owner delete: got %v, want ErrPromotionNotFound", err)
	}

	// A's promotion survives.
	remaining, _ := promos.ListByOwner(merchantA)
	if len(remaining) != 1 {
		t.Fatalf("promotion deleted by non-owner")
	}
}

func TestDeleteOwnPromotion(t *testing.T) {
	promos, _, merchantID := newPromotionFixture(t)

	created, err := promos.Create(merchantID, &dto.CreatePromotionRequest{
		Title: "t", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := promos.Delete(created.ID, merchantID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := promos.Delete(created.ID, merchantID); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("second delete: got %v, want ErrPromotionNotFound", err)
	}
}

func TestDeleteAsAdmin(t *testing.T) {
	promos, _, merchantID := newPromotionFixture(t)

	created, err := promos.Create(merchantID, &dto.CreatePromotionRequest{
		Title: "t", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := promos.DeleteAsAdmin(created.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if err := promos.DeleteAsAdmin(created.ID); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("missing id: got %v, want ErrPromotionNotFound", err)
	}
}

func TestDeleteMerchantCascade(t *testing.T) {
	promos, auth, merchantID := newPromotionFixture(t)
	other := registerMerchant(t, auth, "Bystander", "bystander@example.com")

	for i := 0; i < 3; i++ {
		if _, err := promos.Create(merchantID, &dto.CreatePromotionRequest{
			Title: "t", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	survivor, err := promos.Create(other, &dto.CreatePromotionRequest{
		Title: "keep", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := promos.DeleteMerchantCascade(merchantID); err != nil {
		t.Fatalf("cascade delete failed: %v", err)
	}

	all, err := promos.ListAllAdmin()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, p := range all {
		if p.MerchantID == merchantID {
			t.Fatalf("orphan promotion %d survived cascade", p.ID)
		}
	}
	if len(all) != 1 || all[0].ID != survivor.ID {
		t.Fatalf("bystander's promotion lost in cascade")
	}

	if _, err := auth.GetMerchant(merchantID); !errors.Is(err, ErrMerchantNotFound) {
		t.Fatalf("merchant survived cascade: %v", err)
	}
}

func TestDeleteMerchantCascadeUnknownMerchant(t *testing.T) {
	promos, _, _ := newPromotionFixture(t)
	if err := promos.DeleteMerchantCascade(9999); !errors.Is(err, ErrMerchantNotFound) {
		t.Fatalf("got %v, want ErrMerchantNotFound", err)
	}
}

func TestStoreNameIsSnapshotAtCreation(t *testing.T) {
	promos, _, merchantID := newPromotionFixture(t)

	created, err := promos.Create(merchantID, &dto.CreatePromotionRequest{
		Title: "t", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Simulate a (hypothetical) rename behind the repository's back: the
	// stored store_name must not follow it.
	promos.db.Model(&models.Merchant{}).Where("id = ?", merchantID).
		Update("business_name", "Renamed Cafe")

	listed, _ := promos.ListByOwner(merchantID)
	if len(listed) != 1 || listed[0].StoreName != created.StoreName {
		t.Fatalf("store_name changed after merchant rename")
	}
}

func TestListAllSurfaces(t *testing.T) {
	promos, _, merchantID := newPromotionFixture(t)

	if _, err := promos.Create(merchantID, &dto.CreatePromotionRequest{
		Title: "t", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	adminList, err := promos.ListAllAdmin()
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(adminList) != 1 {
		t.Fatalf("admin list: got %d rows, want 1", len(adminList))
	}
	if adminList[0].MerchantEmail != "cafe@example.com" {
		t.Fatalf("admin list missing merchant email, got %q", adminList[0].MerchantEmail)
	}

	mobileList, err := promos.ListAllMobile()
	if err != nil {
		t.Fatalf("mobile list failed: %v", err)
	}
	if len(mobileList) != 1 {
		t.Fatalf("mobile list: got %d rows, want 1", len(mobileList))
	}
	if mobileList[0].BusinessName != "Cafe Lumiere" {
		t.Fatalf("mobile list missing business name")
	}
	if mobileList[0].MerchantEmail != "" {
		t.Fatalf("mobile list must not expose merchant email")
	}
}

func TestNearby(t *testing.T) {
	promos, _, merchantID := newPromotionFixture(t)

	// Reference point: Paris city centre. Distances approx 0.05, 0.2
	// and 0.8 km north, plus one far outside any plausible radius.
	spots := []struct {
		title    string
		lat, lng float64
	}{
		{"mid", 48.8584, 2.3522},
		{"far", 48.8638, 2.3522},
		{"near", 48.85705, 2.3522},
		{"london", 51.5074, -0.1278},
	}
	for _, s := range spots {
		if _, err := promos.Create(merchantID, &dto.CreatePromotionRequest{
			Title: s.title, Description: "d", Address: "a", Latitude: s.lat, Longitude: s.lng,
		}); err != nil {
			t.Fatalf("create %s failed: %v", s.title, err)
		}
	}

	results, err := promos.Nearby(48.8566, 2.3522, 1.0)
	if err != nil {
		t.Fatalf("nearby failed: %v", err)
	}

	var titles []string
	for _, r := range results {
		titles = append(titles, r.Title)
	}
	want := []string{"near", "mid", "far"}
	if len(titles) != len(want) {
		t.Fatalf("got %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", titles, want)
		}
	}

	for i := 1; i < len(results); i++ {
		if results[i].DistanceKm < results[i-1].DistanceKm {
			t.Fatalf("distances not ascending")
		}
	}
}

func TestNearbyDefaultRadius(t *testing.T) {
	promos, _, merchantID := newPromotionFixture(t)

	// ~742m away: inside the 1km default, outside radius 0.5.
	if _, err := promos.Create(merchantID, &dto.CreatePromotionRequest{
		Title: "close by", Description: "d", Address: "a", Latitude: 48.8566, Longitude: 2.3622,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	defaulted, err := promos.Nearby(48.8566, 2.3522, 0)
	if err != nil {
		t.Fatalf("nearby failed: %v", err)
	}
	if len(defaulted) != 1 {
		t.Fatalf("default radius: got %d results, want 1", len(defaulted))
	}

	tight, err := promos.Nearby(48.8566, 2.3522, 0.5)
	if err != nil {
		t.Fatalf("nearby failed: %v", err)
	}
	if len(tight) != 0 {
		t.Fatalf("radius 0.5: got %d results, want 0", len(tight))
	}
}

func TestNearbyRejectsInvalidCoordinates(t *testing.T) {
	promos, _, _ := newPromotionFixture(t)

	if _, err := promos.Nearby(95, 2.3522, 1); !errors.Is(err, ErrInvalidLatitude) {
		t.Fatalf("got %v, want ErrInvalidLatitude", err)
	}
	if _, err := promos.Nearby(48.8566, 200, 1); !errors.Is(err, ErrInvalidLongitude) {
		t.Fatalf("got %v, want ErrInvalidLongitude", err)
	}
}
