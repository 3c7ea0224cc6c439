package services

import (
	"testing"
	"time"

	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/models"
)

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())
	promos := NewPromotionService(db)
	devices := NewDeviceService(db)
	stats := NewStatsService(db, devices)

	m1 := registerMerchant(t, auth, "Shop One", "one@example.com")
	registerMerchant(t, auth, "Shop Two", "two@example.com")

	for i := 0; i < 3; i++ {
		if _, err := promos.Create(m1, &dto.CreatePromotionRequest{
			Title: "deal", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	now := time.Now()
	seed := []models.MobileDevice{
		{DeviceID: "fresh", LastSeenAt: now.Add(-time.Hour), IsActive: true},
		{DeviceID: "old", LastSeenAt: now.Add(-10 * 24 * time.Hour), IsActive: true},
		{DeviceID: "gone", LastSeenAt: now.Add(-time.Hour), IsActive: false},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	resp, err := stats.Dashboard()
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if resp.Stats.Merchants != 2 {
		t.Fatalf("merchants = %d, want 2", resp.Stats.Merchants)
	}
	if resp.Stats.Promotions != 3 {
		t.Fatalf("promotions = %d, want 3", resp.Stats.Promotions)
	}
	if resp.Stats.TotalMobileUsers != 3 {
		t.Fatalf("total mobile users = %d, want 3", resp.Stats.TotalMobileUsers)
	}
	if resp.Stats.ActiveMobileUsers != 2 {
		t.Fatalf("active mobile users = %d, want 2", resp.Stats.ActiveMobileUsers)
	}
	if resp.Stats.ActiveUsersLast24h != 1 {
		t.Fatalf("active last 24h = %d, want 1", resp.Stats.ActiveUsersLast24h)
	}
	if resp.Stats.ActiveUsersLast7d != 1 {
		t.Fatalf("active last 7d = %d, want 1", resp.Stats.ActiveUsersLast7d)
	}

	if len(resp.RecentMerchants) != 2 {
		t.Fatalf("recent merchants = %d, want 2", len(resp.RecentMerchants))
	}
	if len(resp.RecentPromotions) != 3 {
		t.Fatalf("recent promotions = %d, want 3", len(resp.RecentPromotions))
	}
	if len(resp.RecentInstalls) != 3 {
		t.Fatalf("recent installs = %d, want 3", len(resp.RecentInstalls))
	}
}

func TestListMerchantsWithCounts(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestIssuer())
	promos := NewPromotionService(db)
	devices := NewDeviceService(db)
	stats := NewStatsService(db, devices)

	busy := registerMerchant(t, auth, "Busy Shop", "busy@example.com")
	registerMerchant(t, auth, "Quiet Shop", "quiet@example.com")

	for i := 0; i < 2; i++ {
		if _, err := promos.Create(busy, &dto.CreatePromotionRequest{
			Title: "deal", Description: "d", Address: "a", Latitude: 1, Longitude: 1,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	merchants, err := stats.ListMerchants()
	if err != nil {
		t.Fatalf("list merchants failed: %v", err)
	}
	if len(merchants) != 2 {
		t.Fatalf("got %d merchants, want 2", len(merchants))
	}

	byEmail := map[string]int64{}
	for _, m := range merchants {
		byEmail[m.Email] = m.PromotionsCount
	}
	if byEmail["busy@example.com"] != 2 {
		t.Fatalf("busy shop count = %d, want 2", byEmail["busy@example.com"])
	}
	if byEmail["quiet@example.com"] != 0 {
		t.Fatalf("quiet shop count = %d, want 0", byEmail["quiet@example.com"])
	}
}
