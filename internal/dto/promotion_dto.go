package dto

type CreatePromotionRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type PromotionResponse struct {
	ID          uint    `json:"id"`
	MerchantID  uint    `json:"merchant_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StoreName   string  `json:"store_name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CreatedAt   string  `json:"created_at"`
}

// PromotionWithMerchant joins merchant display fields onto a promotion,
// used by the admin and mobile list surfaces.
type PromotionWithMerchant struct {
	PromotionResponse
	BusinessName  string  `json:"business_name"`
	MerchantEmail string  `json:"email,omitempty"`
	LogoURL       *string `json:"logo_url,omitempty"`
}

// NearbyPromotion adds the computed great-circle distance to a joined
// promotion in a proximity result.
type NearbyPromotion struct {
	PromotionWithMerchant
	DistanceKm float64 `json:"distance"`
}
