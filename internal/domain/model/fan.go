package model

import (
	"time"

	"github.com/joaobatista235/know-your-fan/internal/domain/enums"
)

type Address struct {
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
}

type Document struct {
	Type             enums.DocumentType       `json:"type"`
	Number           string                   `json:"number"`
	URL              string                   `json:"url,omitempty"`
	Status           enums.VerificationStatus `json:"status"`
	Verified         bool                     `json:"verified"`
	VerificationDate *time.Time               `json:"verification_date,omitempty"`
}

type SocialAccount struct {
	Platform   string     `json:"platform"`
	ProfileURL string     `json:"profile_url"`
	Username   string     `json:"username"`
	Connected  bool       `json:"connected"`
	LastSync   *time.Time `json:"last_sync,omitempty"`
}

type EsportsProfile struct {
	Platform         string                   `json:"platform"`
	ProfileURL       string                   `json:"profile_url"`
	Username         string                   `json:"username"`
	Games            []string                 `json:"games,omitempty"`
	Status           enums.VerificationStatus `json:"status"`
	Verified         bool                     `json:"verified"`
	VerificationDate *time.Time               `json:"verification_date,omitempty"`
}

type Purchase struct {
	Amount      float64   `json:"amount"`
	Item        string    `json:"item"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type EventInterest struct {
	Name          string              `json:"name"`
	Date          *time.Time          `json:"date,omitempty"`
	InterestLevel enums.InterestLevel `json:"interest_level"`
}

// Fan is the aggregate root. All nested records are exclusively owned by the
// aggregate and are persisted and loaded as a single unit.
type Fan struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	Name            string     `json:"name,omitempty"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	CPF             string     `json:"cpf,omitempty"`
	Address         *Address   `json:"address,omitempty"`
	ProfileImageURL string     `json:"profile_image_url,omitempty"`

	Documents       []Document       `json:"documents,omitempty"`
	SocialAccounts  []SocialAccount  `json:"social_accounts,omitempty"`
	EsportsProfiles []EsportsProfile `json:"esports_profiles,omitempty"`
	Purchases       []Purchase       `json:"purchases,omitempty"`
	EventInterests  []EventInterest  `json:"event_interests,omitempty"`

	FavoriteGames []string `json:"favorite_games,omitempty"`
	FavoriteTeams []string `json:"favorite_teams,omitempty"`

	ProfileCompleteness int       `json:"profile_completeness"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UpsertDocument inserts or replaces the document keyed by its number.
// A replacement discards the prior verification state entirely.
func (f *Fan) UpsertDocument(doc Document) {
	for i := range f.Documents {
		if f.Documents[i].Number == doc.Number {
			f.Documents[i] = doc
			return
		}
	}
	f.Documents = append(f.Documents, doc)
}

func (f *Fan) FindDocument(number string) *Document {
	for i := range f.Documents {
		if f.Documents[i].Number == number {
			return &f.Documents[i]
		}
	}
	return nil
}

// UpsertSocialAccount keeps at most one account per platform.
func (f *Fan) UpsertSocialAccount(account SocialAccount) {
	for i := range f.SocialAccounts {
		if f.SocialAccounts[i].Platform == account.Platform {
			f.SocialAccounts[i] = account
			return
		}
	}
	f.SocialAccounts = append(f.SocialAccounts, account)
}

func (f *Fan) FindSocialAccount(platform string) *SocialAccount {
	for i := range f.SocialAccounts {
		if f.SocialAccounts[i].Platform == platform {
			return &f.SocialAccounts[i]
		}
	}
	return nil
}

// UpsertEsportsProfile keeps at most one profile per platform.
func (f *Fan) UpsertEsportsProfile(profile EsportsProfile) {
	for i := range f.EsportsProfiles {
		if f.EsportsProfiles[i].Platform == profile.Platform {
			f.EsportsProfiles[i] = profile
			return
		}
	}
	f.EsportsProfiles = append(f.EsportsProfiles, profile)
}

func (f *Fan) FindEsportsProfile(platform string) *EsportsProfile {
	for i := range f.EsportsProfiles {
		if f.EsportsProfiles[i].Platform == platform {
			return &f.EsportsProfiles[i]
		}
	}
	return nil
}

// AddFavoriteGames appends only games not already present.
func (f *Fan) AddFavoriteGames(games ...string) {
	f.FavoriteGames = appendAbsent(f.FavoriteGames, games)
}

// AddFavoriteTeams appends only teams not already present.
func (f *Fan) AddFavoriteTeams(teams ...string) {
	f.FavoriteTeams = appendAbsent(f.FavoriteTeams, teams)
}

func appendAbsent(existing []string, values []string) []string {
	for _, value := range values {
		found := false
		for _, have := range existing {
			if have == value {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, value)
		}
	}
	return existing
}

// Clone returns a deep copy of the aggregate. Mutation flows work on a copy so
// a failed verification or persistence round-trip leaves the loaded state intact.
func (f *Fan) Clone() *Fan {
	if f == nil {
		return nil
	}
	out := *f
	if f.BirthDate != nil {
		v := *f.BirthDate
		out.BirthDate = &v
	}
	if f.Address != nil {
		v := *f.Address
		out.Address = &v
	}
	out.Documents = cloneDocuments(f.Documents)
	out.SocialAccounts = cloneSocialAccounts(f.SocialAccounts)
	out.EsportsProfiles = cloneEsportsProfiles(f.EsportsProfiles)
	out.Purchases = append([]Purchase(nil), f.Purchases...)
	out.EventInterests = cloneEventInterests(f.EventInterests)
	out.FavoriteGames = append([]string(nil), f.FavoriteGames...)
	out.FavoriteTeams = append([]string(nil), f.FavoriteTeams...)
	return &out
}

func cloneDocuments(docs []Document) []Document {
	if docs == nil {
		return nil
	}
	out := make([]Document, len(docs))
	for i, doc := range docs {
		out[i] = doc
		if doc.VerificationDate != nil {
			v := *doc.VerificationDate
			out[i].VerificationDate = &v
		}
	}
	return out
}

func cloneSocialAccounts(accounts []SocialAccount) []SocialAccount {
	if accounts == nil {
		return nil
	}
	out := make([]SocialAccount, len(accounts))
	for i, account := range accounts {
		out[i] = account
		if account.LastSync != nil {
			v := *account.LastSync
			out[i].LastSync = &v
		}
	}
	return out
}

func cloneEsportsProfiles(profiles []EsportsProfile) []EsportsProfile {
	if profiles == nil {
		return nil
	}
	out := make([]EsportsProfile, len(profiles))
	for i, profile := range profiles {
		out[i] = profile
		out[i].Games = append([]string(nil), profile.Games...)
		if profile.VerificationDate != nil {
			v := *profile.VerificationDate
			out[i].VerificationDate = &v
		}
	}
	return out
}

func cloneEventInterests(events []EventInterest) []EventInterest {
	if events == nil {
		return nil
	}
	out := make([]EventInterest, len(events))
	for i, event := range events {
		out[i] = event
		if event.Date != nil {
			v := *event.Date
			out[i].Date = &v
		}
	}
	return out
}
