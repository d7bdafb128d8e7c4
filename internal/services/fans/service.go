package fans

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joaobatista235/know-your-fan/internal/domain/enums"
	"github.com/joaobatista235/know-your-fan/internal/domain/model"
	"github.com/joaobatista235/know-your-fan/internal/services/scoring"
	"github.com/joaobatista235/know-your-fan/internal/services/social"
	"github.com/joaobatista235/know-your-fan/internal/services/verification"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrProfileNotFound = errors.New("fan profile not found")
	ErrProfileExists   = errors.New("fan profile already exists")
	ErrNotConnected    = errors.New("social platform not connected")
)

// Store is the external fan document store. Implementations must treat the
// aggregate as one unit: Update replaces the whole stored document.
type Store interface {
	Create(ctx context.Context, fan *model.Fan) (*model.Fan, error)
	FindByOwner(ctx context.Context, ownerID string) (*model.Fan, error)
	FindByID(ctx context.Context, id string) (*model.Fan, error)
	Update(ctx context.Context, fan *model.Fan) (*model.Fan, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Cache is an optional read cache keyed by owner id. All methods must be safe
// to skip; a nil cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, ownerID string) (*model.Fan, bool, error)
	Set(ctx context.Context, fan *model.Fan) error
	Invalidate(ctx context.Context, ownerID string) error
}

// BlobStore uploads raw document bytes and returns a fetchable URL.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, path, contentType string) (string, error)
}

type Service struct {
	store  Store
	cache  Cache
	ledger *verification.Ledger
	social social.Provider
	blobs  BlobStore
	now    func() time.Time
}

type Dependencies struct {
	Store  Store
	Cache  Cache
	Ledger *verification.Ledger
	Social social.Provider
	Blobs  BlobStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		store:  deps.Store,
		cache:  deps.Cache,
		ledger: deps.Ledger,
		social: deps.Social,
		blobs:  deps.Blobs,
		now:    time.Now,
	}
}

type ProfileInput struct {
	Name            string
	Email           string
	Phone           string
	BirthDate       *time.Time
	CPF             string
	Address         *model.Address
	ProfileImageURL string
	FavoriteGames   []string
	FavoriteTeams   []string
}

// UpdateInput carries only the fields the caller wants changed; nil pointers
// leave the current value alone. id, owner id and createdAt are immutable.
type UpdateInput struct {
	Name            *string
	Email           *string
	Phone           *string
	BirthDate       *time.Time
	CPF             *string
	Address         *model.Address
	ProfileImageURL *string
	FavoriteGames   []string
	FavoriteTeams   []string
}

type PurchaseInput struct {
	Amount      float64
	Item        string
	PurchasedAt *time.Time
}

type EventInterestInput struct {
	Name          string
	Date          *time.Time
	InterestLevel string
}

type SyncResult struct {
	Platform string
	Teams    []string
	Games    []string
	LastSync time.Time
}

type Analytics struct {
	ProfileCompleteness     int
	VerifiedDocuments       int
	ConnectedPlatforms      int
	VerifiedEsportsProfiles int
	TotalPurchases          int
	TotalSpent              float64
	TotalEvents             int
	FavoriteGames           map[string]int
	FavoriteTeams           map[string]int
}

func (s *Service) CreateProfile(ctx context.Context, ownerID string, in ProfileInput) (*model.Fan, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id is required: %w", ErrValidation)
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("email is required: %w", ErrValidation)
	}
	if s.store == nil {
		return nil, fmt.Errorf("fan store is nil")
	}

	existing, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, fmt.Errorf("check existing profile: %w", err)
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	now := s.now().UTC()
	fan := &model.Fan{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		BirthDate:       in.BirthDate,
		CPF:             strings.TrimSpace(in.CPF),
		Address:         in.Address,
		ProfileImageURL: strings.TrimSpace(in.ProfileImageURL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	fan.AddFavoriteGames(in.FavoriteGames...)
	fan.AddFavoriteTeams(in.FavoriteTeams...)
	fan.ProfileCompleteness = scoring.Score(*fan)

	created, err := s.store.Create(ctx, fan)
	if err != nil {
		return nil, fmt.Errorf("create fan profile: %w", err)
	}

	s.cacheSet(ctx, created)
	return created, nil
}

func (s *Service) GetProfile(ctx context.Context, ownerID string) (*model.Fan, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id is required: %w", ErrValidation)
	}
	if s.store == nil {
		return nil, fmt.Errorf("fan store is nil")
	}

	if s.cache != nil {
		if fan, ok, err := s.cache.Get(ctx, ownerID); err == nil && ok {
			return fan, nil
		}
	}

	fan, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, fan)
	return fan, nil
}

func (s *Service) UpdateProfile(ctx context.Context, ownerID string, in UpdateInput) (*model.Fan, error) {
	fan, err := s.loadForMutation(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		fan.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("email cannot be cleared: %w", ErrValidation)
		}
		fan.Email = email
	}
	if in.Phone != nil {
		fan.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.BirthDate != nil {
		fan.BirthDate = in.BirthDate
	}
	if in.CPF != nil {
		fan.CPF = strings.TrimSpace(*in.CPF)
	}
	if in.Address != nil {
		fan.Address = in.Address
	}
	if in.ProfileImageURL != nil {
		fan.ProfileImageURL = strings.TrimSpace(*in.ProfileImageURL)
	}
	fan.AddFavoriteGames(in.FavoriteGames...)
	fan.AddFavoriteTeams(in.FavoriteTeams...)

	return s.persist(ctx, fan)
}

// UploadDocument stores the file, upserts the document keyed by its number
// (replacement resets any prior verification state) and runs the verification
// lifecycle before the single persistence call.
func (s *Service) UploadDocument(ctx context.Context, ownerID string, docType enums.DocumentType, number string, data []byte, contentType string) (model.Document, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return model.Document{}, fmt.Errorf("document number is required: %w", ErrValidation)
	}
	if len(data) == 0 {
		return model.Document{}, fmt.Errorf("document file is required: %w", ErrValidation)
	}
	if s.blobs == nil || s.ledger == nil {
		return model.Document{}, fmt.Errorf("fan service dependencies are not configured")
	}

	fan, err := s.loadForMutation(ctx, ownerID)
	if err != nil {
		return model.Document{}, err
	}

	path := fmt.Sprintf("documents/%s/%s_%s.jpg", ownerID, strings.ToLower(string(docType)), uuid.NewString())
	if contentType == "" {
		contentType = "image/jpeg"
	}
	url, err := s.blobs.Upload(ctx, data, path, contentType)
	if err != nil {
		return model.Document{}, fmt.Errorf("upload document file: %w", err)
	}

	fan.UpsertDocument(model.Document{
		Type:   docType,
		Number: number,
		URL:    url,
		Status: enums.VerificationStatusUnverified,
	})
	if err := s.ledger.SubmitDocument(fan, number); err != nil {
		return model.Document{}, err
	}
	if _, err := s.ledger.ResolveDocument(ctx, fan, number); err != nil {
		return model.Document{}, err
	}

	if _, err := s.persist(ctx, fan); err != nil {
		return model.Document{}, err
	}
	return *fan.FindDocument(number), nil
}

func (s *Service) ConnectSocialAccount(ctx context.Context, ownerID, platform, profileURL, username string) (model.SocialAccount, error) {
	platform = normalizePlatform(platform)
	profileURL = strings.TrimSpace(profileURL)
	if platform == "" || profileURL == "" {
		return model.SocialAccount{}, fmt.Errorf("platform and profile url are required: %w", ErrValidation)
	}
	if s.social == nil {
		return model.SocialAccount{}, fmt.Errorf("social provider is not configured")
	}

	fan, err := s.loadForMutation(ctx, ownerID)
	if err != nil {
		return model.SocialAccount{}, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = usernameFromURL(profileURL)
	}

	now := s.now().UTC()
	fan.UpsertSocialAccount(model.SocialAccount{
		Platform:   platform,
		ProfileURL: profileURL,
		Username:   username,
		Connected:  true,
		LastSync:   &now,
	})

	if err := s.mergeSyncPayload(ctx, fan, platform, username); err != nil {
		return model.SocialAccount{}, err
	}

	if _, err := s.persist(ctx, fan); err != nil {
		return model.SocialAccount{}, err
	}
	return *fan.FindSocialAccount(platform), nil
}

func (s *Service) SyncSocialAccount(ctx context.Context, ownerID, platform string) (SyncResult, error) {
	platform = normalizePlatform(platform)
	if platform == "" {
		return SyncResult{}, fmt.Errorf("platform is required: %w", ErrValidation)
	}
	if s.social == nil {
		return SyncResult{}, fmt.Errorf("social provider is not configured")
	}

	fan, err := s.loadForMutation(ctx, ownerID)
	if err != nil {
		return SyncResult{}, err
	}

	account := fan.FindSocialAccount(platform)
	if account == nil || !account.Connected {
		return SyncResult{}, fmt.Errorf("platform %q: %w", platform, ErrNotConnected)
	}

	payload, err := s.social.FetchProfileData(ctx, platform, account.Username)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch social profile data: %w", err)
	}

	now := s.now().UTC()
	account.LastSync = &now
	fan.AddFavoriteTeams(payload.Teams...)
	fan.AddFavoriteGames(payload.Games...)

	if _, err := s.persist(ctx, fan); err != nil {
		return SyncResult{}, err
	}

	return SyncResult{
		Platform: platform,
		Teams:    payload.Teams,
		Games:    payload.Games,
		LastSync: now,
	}, nil
}

func (s *Service) AddEsportsProfile(ctx context.Context, ownerID, platform, profileURL, username string) (model.EsportsProfile, error) {
	platform = normalizePlatform(platform)
	profileURL = strings.TrimSpace(profileURL)
	username = strings.TrimSpace(username)
	if platform == "" || profileURL == "" || username == "" {
		return model.EsportsProfile{}, fmt.Errorf("platform, profile url and username are required: %w", ErrValidation)
	}
	if s.ledger == nil {
		return model.EsportsProfile{}, fmt.Errorf("verification ledger is not configured")
	}

	fan, err := s.loadForMutation(ctx, ownerID)
	if err != nil {
		return model.EsportsProfile{}, err
	}

	fan.UpsertEsportsProfile(model.EsportsProfile{
		Platform:   platform,
		ProfileURL: profileURL,
		Username:   username,
		Status:     enums.VerificationStatusUnverified,
	})
	if err := s.ledger.SubmitEsportsProfile(fan, platform); err != nil {
		return model.EsportsProfile{}, err
	}
	if _, err := s.ledger.ResolveEsportsProfile(ctx, fan, platform); err != nil {
		return model.EsportsProfile{}, err
	}

	if _, err := s.persist(ctx, fan); err != nil {
		return model.EsportsProfile{}, err
	}
	return *fan.FindEsportsProfile(platform), nil
}

// VerifyEsportsProfile re-runs verification for an existing profile.
func (s *Service) VerifyEsportsProfile(ctx context.Context, ownerID, platform string) (bool, error) {
	platform = normalizePlatform(platform)
	if platform == "" {
		return false, fmt.Errorf("platform is required: %w", ErrValidation)
	}
	if s.ledger == nil {
		return false, fmt.Errorf("verification ledger is not configured")
	}

	fan, err := s.loadForMutation(ctx, ownerID)
	if err != nil {
		return false, err
	}

	if fan.FindEsportsProfile(platform) == nil {
		return false, fmt.Errorf("esports profile %q: %w", platform, ErrValidation)
	}
	if err := s.ledger.SubmitEsportsProfile(fan, platform); err != nil {
		return false, err
	}
	valid, err := s.ledger.ResolveEsportsProfile(ctx, fan, platform)
	if err != nil {
		return false, err
	}

	if _, err := s.persist(ctx, fan); err != nil {
		return false, err
	}
	return valid, nil
}

func (s *Service) AddPurchase(ctx context.Context, ownerID string, in PurchaseInput) (model.Purchase, error) {
	if in.Amount < 0 {
		return model.Purchase{}, fmt.Errorf("amount must be non-negative: %w", ErrValidation)
	}
	if strings.TrimSpace(in.Item) == "" {
		return model.Purchase{}, fmt.Errorf("item is required: %w", ErrValidation)
	}

	fan, err := s.loadForMutation(ctx, ownerID)
	if err != nil {
		return model.Purchase{}, err
	}

	purchasedAt := s.now().UTC()
	if in.PurchasedAt != nil {
		purchasedAt = in.PurchasedAt.UTC()
	}
	purchase := model.Purchase{
		Amount:      in.Amount,
		Item:        strings.TrimSpace(in.Item),
		PurchasedAt: purchasedAt,
	}
	fan.Purchases = append(fan.Purchases, purchase)

	if _, err := s.persist(ctx, fan); err != nil {
		return model.Purchase{}, err
	}
	return purchase, nil
}

func (s *Service) AddEventInterest(ctx context.Context, ownerID string, in EventInterestInput) (model.EventInterest, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.EventInterest{}, fmt.Errorf("event name is required: %w", ErrValidation)
	}
	level, ok := enums.ParseInterestLevel(strings.ToLower(strings.TrimSpace(in.InterestLevel)))
	if !ok {
		return model.EventInterest{}, fmt.Errorf("invalid interest level: %w", ErrValidation)
	}

	fan, err := s.loadForMutation(ctx, ownerID)
	if err != nil {
		return model.EventInterest{}, err
	}

	event := model.EventInterest{
		Name:          name,
		Date:          in.Date,
		InterestLevel: level,
	}
	fan.EventInterests = append(fan.EventInterests, event)

	if _, err := s.persist(ctx, fan); err != nil {
		return model.EventInterest{}, err
	}
	return event, nil
}

// Completeness recomputes the score and writes it back, so the stored value
// never drifts from a stale computation.
// DeleteProfile removes the aggregate and its cache entry.
func (s *Service) DeleteProfile(ctx context.Context, ownerID string) error {
	fan, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	deleted, err := s.store.Delete(ctx, fan.ID)
	if err != nil {
		return fmt.Errorf("delete fan profile: %w", err)
	}
	if !deleted {
		return ErrProfileNotFound
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, ownerID)
	}
	return nil
}

func (s *Service) Completeness(ctx context.Context, ownerID string) (int, error) {
	fan, err := s.loadForMutation(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	updated, err := s.persist(ctx, fan)
	if err != nil {
		return 0, err
	}
	return updated.ProfileCompleteness, nil
}

// Analytics is a pure read; it never mutates or persists the aggregate.
func (s *Service) Analytics(ctx context.Context, ownerID string) (Analytics, error) {
	fan, err := s.GetProfile(ctx, ownerID)
	if err != nil {
		return Analytics{}, err
	}

	out := Analytics{
		ProfileCompleteness: fan.ProfileCompleteness,
		TotalPurchases:      len(fan.Purchases),
		TotalEvents:         len(fan.EventInterests),
		FavoriteGames:       map[string]int{},
		FavoriteTeams:       map[string]int{},
	}
	for _, doc := range fan.Documents {
		if doc.Verified {
			out.VerifiedDocuments++
		}
	}
	for _, account := range fan.SocialAccounts {
		if account.Connected {
			out.ConnectedPlatforms++
		}
	}
	for _, profile := range fan.EsportsProfiles {
		if profile.Verified {
			out.VerifiedEsportsProfiles++
		}
	}
	for _, purchase := range fan.Purchases {
		out.TotalSpent += purchase.Amount
	}
	for _, game := range fan.FavoriteGames {
		out.FavoriteGames[game]++
	}
	for _, team := range fan.FavoriteTeams {
		out.FavoriteTeams[team]++
	}

	return out, nil
}

// loadForMutation returns a deep copy so an aborted flow cannot leak partial
// state into the cached aggregate.
func (s *Service) loadForMutation(ctx context.Context, ownerID string) (*model.Fan, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id is required: %w", ErrValidation)
	}
	if s.store == nil {
		return nil, fmt.Errorf("fan store is nil")
	}

	fan, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return fan.Clone(), nil
}

// persist recomputes the completeness score, advances updatedAt and performs
// the single store round-trip for the mutation.
func (s *Service) persist(ctx context.Context, fan *model.Fan) (*model.Fan, error) {
	fan.UpdatedAt = s.now().UTC()
	fan.ProfileCompleteness = scoring.Score(*fan)

	updated, err := s.store.Update(ctx, fan)
	if err != nil {
		return nil, fmt.Errorf("persist fan aggregate: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, fan.OwnerID)
	}
	s.cacheSet(ctx, updated)
	return updated, nil
}

func (s *Service) cacheSet(ctx context.Context, fan *model.Fan) {
	if s.cache == nil || fan == nil {
		return
	}
	_ = s.cache.Set(ctx, fan)
}

func (s *Service) mergeSyncPayload(ctx context.Context, fan *model.Fan, platform, username string) error {
	payload, err := s.social.FetchProfileData(ctx, platform, username)
	if err != nil {
		return fmt.Errorf("fetch social profile data: %w", err)
	}
	fan.AddFavoriteTeams(payload.Teams...)
	fan.AddFavoriteGames(payload.Games...)
	return nil
}

func normalizePlatform(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func usernameFromURL(profileURL string) string {
	trimmed := strings.TrimRight(profileURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return trimmed
	}
	return trimmed[idx+1:]
}
