package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/joaobatista235/know-your-fan/internal/domain/model"
	fanssvc "github.com/joaobatista235/know-your-fan/internal/services/fans"
	"github.com/joaobatista235/know-your-fan/internal/transport/http/dto"
)

const dateOnly = "2006-01-02"

func fanResponse(fan *model.Fan) dto.FanProfileResponse {
	out := dto.FanProfileResponse{
		ID:                  fan.ID,
		OwnerID:             fan.OwnerID,
		Name:                fan.Name,
		Email:               fan.Email,
		Phone:               fan.Phone,
		CPF:                 fan.CPF,
		ProfileImageURL:     fan.ProfileImageURL,
		Documents:           []dto.DocumentResponse{},
		SocialAccounts:      []dto.SocialAccountResponse{},
		EsportsProfiles:     []dto.EsportsProfileResponse{},
		Purchases:           []dto.PurchaseResponse{},
		EventInterests:      []dto.EventInterestResponse{},
		FavoriteGames:       append([]string{}, fan.FavoriteGames...),
		FavoriteTeams:       append([]string{}, fan.FavoriteTeams...),
		ProfileCompleteness: fan.ProfileCompleteness,
		CreatedAt:           fan.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           fan.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if fan.BirthDate != nil {
		out.BirthDate = fan.BirthDate.UTC().Format(dateOnly)
	}
	if fan.Address != nil {
		out.Address = addressDTO(*fan.Address)
	}
	for _, doc := range fan.Documents {
		out.Documents = append(out.Documents, documentResponse(doc))
	}
	for _, account := range fan.SocialAccounts {
		out.SocialAccounts = append(out.SocialAccounts, socialAccountResponse(account))
	}
	for _, profile := range fan.EsportsProfiles {
		out.EsportsProfiles = append(out.EsportsProfiles, esportsProfileResponse(profile))
	}
	for _, purchase := range fan.Purchases {
		out.Purchases = append(out.Purchases, purchaseResponse(purchase))
	}
	for _, event := range fan.EventInterests {
		out.EventInterests = append(out.EventInterests, eventInterestResponse(event))
	}
	return out
}

func documentResponse(doc model.Document) dto.DocumentResponse {
	out := dto.DocumentResponse{
		Type:     string(doc.Type),
		Number:   doc.Number,
		URL:      doc.URL,
		Status:   string(doc.Status),
		Verified: doc.Verified,
	}
	if doc.VerificationDate != nil {
		out.VerificationDate = doc.VerificationDate.UTC().Format(time.RFC3339)
	}
	return out
}

func socialAccountResponse(account model.SocialAccount) dto.SocialAccountResponse {
	out := dto.SocialAccountResponse{
		Platform:   account.Platform,
		ProfileURL: account.ProfileURL,
		Username:   account.Username,
		Connected:  account.Connected,
	}
	if account.LastSync != nil {
		out.LastSync = account.LastSync.UTC().Format(time.RFC3339)
	}
	return out
}

func esportsProfileResponse(profile model.EsportsProfile) dto.EsportsProfileResponse {
	out := dto.EsportsProfileResponse{
		Platform:   profile.Platform,
		ProfileURL: profile.ProfileURL,
		Username:   profile.Username,
		Games:      append([]string{}, profile.Games...),
		Status:     string(profile.Status),
		Verified:   profile.Verified,
	}
	if profile.VerificationDate != nil {
		out.VerificationDate = profile.VerificationDate.UTC().Format(time.RFC3339)
	}
	return out
}

func purchaseResponse(purchase model.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		Amount:      purchase.Amount,
		Item:        purchase.Item,
		PurchasedAt: purchase.PurchasedAt.UTC().Format(time.RFC3339),
	}
}

func eventInterestResponse(event model.EventInterest) dto.EventInterestResponse {
	out := dto.EventInterestResponse{
		Name:          event.Name,
		InterestLevel: string(event.InterestLevel),
	}
	if event.Date != nil {
		out.Date = event.Date.UTC().Format(dateOnly)
	}
	return out
}

func addressDTO(address model.Address) *dto.AddressDTO {
	return &dto.AddressDTO{
		Street:       address.Street,
		Number:       address.Number,
		Complement:   address.Complement,
		Neighborhood: address.Neighborhood,
		City:         address.City,
		State:        address.State,
		PostalCode:   address.PostalCode,
		Country:      address.Country,
	}
}

func addressFromDTO(in *dto.AddressDTO) *model.Address {
	if in == nil {
		return nil
	}
	return &model.Address{
		Street:       in.Street,
		Number:       in.Number,
		Complement:   in.Complement,
		Neighborhood: in.Neighborhood,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
	}
}

// parseDate accepts a plain date or a full RFC3339 timestamp.
func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateOnly, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("invalid date %q", value)
}

func syncResponse(result fanssvc.SyncResult) dto.SocialSyncResponse {
	return dto.SocialSyncResponse{
		Platform: result.Platform,
		Teams:    append([]string{}, result.Teams...),
		Games:    append([]string{}, result.Games...),
		LastSync: result.LastSync.UTC().Format(time.RFC3339),
	}
}
