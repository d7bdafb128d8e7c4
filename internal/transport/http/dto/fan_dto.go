package dto

type AddressDTO struct {
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
}

type CreateProfileRequest struct {
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	BirthDate       string      `json:"birth_date"`
	CPF             string      `json:"cpf"`
	Address         *AddressDTO `json:"address"`
	ProfileImageURL string      `json:"profile_image_url"`
	FavoriteGames   []string    `json:"favorite_games"`
	FavoriteTeams   []string    `json:"favorite_teams"`
}

type UpdateProfileRequest struct {
	Name            *string     `json:"name"`
	Email           *string     `json:"email"`
	Phone           *string     `json:"phone"`
	BirthDate       *string     `json:"birth_date"`
	CPF             *string     `json:"cpf"`
	Address         *AddressDTO `json:"address"`
	ProfileImageURL *string     `json:"profile_image_url"`
	FavoriteGames   []string    `json:"favorite_games"`
	FavoriteTeams   []string    `json:"favorite_teams"`
}

type DocumentResponse struct {
	Type             string `json:"type"`
	Number           string `json:"number"`
	URL              string `json:"url,omitempty"`
	Status           string `json:"status"`
	Verified         bool   `json:"verified"`
	VerificationDate string `json:"verification_date,omitempty"`
}

type SocialAccountRequest struct {
	Platform   string `json:"platform"`
	ProfileURL string `json:"profile_url"`
	Username   string `json:"username"`
}

type SocialAccountResponse struct {
	Platform   string `json:"platform"`
	ProfileURL string `json:"profile_url"`
	Username   string `json:"username"`
	Connected  bool   `json:"connected"`
	LastSync   string `json:"last_sync,omitempty"`
}

type SocialSyncResponse struct {
	Platform string   `json:"platform"`
	Teams    []string `json:"teams"`
	Games    []string `json:"games"`
	LastSync string   `json:"last_sync"`
}

type EsportsProfileRequest struct {
	Platform   string `json:"platform"`
	ProfileURL string `json:"profile_url"`
	Username   string `json:"username"`
}

type EsportsProfileResponse struct {
	Platform         string   `json:"platform"`
	ProfileURL       string   `json:"profile_url"`
	Username         string   `json:"username"`
	Games            []string `json:"games,omitempty"`
	Status           string   `json:"status"`
	Verified         bool     `json:"verified"`
	VerificationDate string   `json:"verification_date,omitempty"`
}

type EsportsVerifyResponse struct {
	Platform string `json:"platform"`
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
}

type PurchaseRequest struct {
	Amount      float64 `json:"amount"`
	Item        string  `json:"item"`
	PurchasedAt string  `json:"purchased_at"`
}

type PurchaseResponse struct {
	Amount      float64 `json:"amount"`
	Item        string  `json:"item"`
	PurchasedAt string  `json:"purchased_at"`
}

type EventInterestRequest struct {
	Name          string `json:"name"`
	Date          string `json:"date"`
	InterestLevel string `json:"interest_level"`
}

type EventInterestResponse struct {
	Name          string `json:"name"`
	Date          string `json:"date,omitempty"`
	InterestLevel string `json:"interest_level"`
}

type FanProfileResponse struct {
	ID                  string                   `json:"id"`
	OwnerID             string                   `json:"owner_id"`
	Name                string                   `json:"name,omitempty"`
	Email               string                   `json:"email"`
	Phone               string                   `json:"phone,omitempty"`
	BirthDate           string                   `json:"birth_date,omitempty"`
	CPF                 string                   `json:"cpf,omitempty"`
	Address             *AddressDTO              `json:"address,omitempty"`
	ProfileImageURL     string                   `json:"profile_image_url,omitempty"`
	Documents           []DocumentResponse       `json:"documents"`
	SocialAccounts      []SocialAccountResponse  `json:"social_accounts"`
	EsportsProfiles     []EsportsProfileResponse `json:"esports_profiles"`
	Purchases           []PurchaseResponse       `json:"purchases"`
	EventInterests      []EventInterestResponse  `json:"event_interests"`
	FavoriteGames       []string                 `json:"favorite_games"`
	FavoriteTeams       []string                 `json:"favorite_teams"`
	ProfileCompleteness int                      `json:"profile_completeness"`
	CreatedAt           string                   `json:"created_at"`
	UpdatedAt           string                   `json:"updated_at"`
}

type CompletenessResponse struct {
	ProfileCompleteness int `json:"profile_completeness"`
}

type AnalyticsResponse struct {
	ProfileCompleteness     int            `json:"profile_completeness"`
	VerifiedDocuments       int            `json:"verified_documents"`
	ConnectedPlatforms      int            `json:"connected_platforms"`
	VerifiedEsportsProfiles int            `json:"verified_esports_profiles"`
	TotalPurchases          int            `json:"total_purchases"`
	TotalSpent              float64        `json:"total_spent"`
	TotalEvents             int            `json:"total_events"`
	FavoriteGames           map[string]int `json:"favorite_games"`
	FavoriteTeams           map[string]int `json:"favorite_teams"`
}
