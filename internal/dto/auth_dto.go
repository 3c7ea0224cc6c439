package dto

type RegisterRequest struct {
	BusinessName string  `json:"business_name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Address      string  `json:"address"`
	LogoURL      *string `json:"logo_url,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MerchantResponse struct {
	ID           uint    `json:"id"`
	BusinessName string  `json:"business_name"`
	Email        string  `json:"email"`
	Address      string  `json:"address"`
	LogoURL      *string `json:"logo_url"`
	CreatedAt    string  `json:"created_at"`
}

type MerchantAuthResponse struct {
	Message  string           `json:"message"`
	Token    string           `json:"token"`
	Merchant MerchantResponse `json:"merchant"`
}

type AdminResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AdminAuthResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Admin   AdminResponse `json:"admin"`
}
