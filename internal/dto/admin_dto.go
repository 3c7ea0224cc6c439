package dto

// MerchantWithCount is the admin merchant listing row.
type MerchantWithCount struct {
	MerchantResponse
	PromotionsCount int64 `json:"promotions_count"`
}

type DashboardStats struct {
	Merchants          int64 `json:"merchants"`
	Promotions         int64 `json:"promotions"`
	TotalMobileUsers   int64 `json:"total_mobile_users"`
	ActiveMobileUsers  int64 `json:"active_mobile_users"`
	ActiveUsersLast24h int64 `json:"active_users_last_24h"`
	ActiveUsersLast7d  int64 `json:"active_users_last_7_days"`
}

type RecentInstall struct {
	DeviceID       string `json:"device_id"`
	Platform       string `json:"platform"`
	AppVersion     string `json:"app_version"`
	FirstInstallAt string `json:"first_install_at"`
}

type DashboardResponse struct {
	Stats            DashboardStats          `json:"stats"`
	RecentMerchants  []MerchantResponse      `json:"recent_merchants"`
	RecentPromotions []PromotionWithMerchant `json:"recent_promotions"`
	RecentInstalls   []RecentInstall         `json:"recent_installs"`
}
