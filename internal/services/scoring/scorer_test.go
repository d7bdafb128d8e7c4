package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/joaobatista235/know-your-fan/internal/domain/enums"
	"github.com/joaobatista235/know-your-fan/internal/domain/model"
)

func TestScoreEmptyProfileIsZero(t *testing.T) {
	if got := Score(model.Fan{}); got != 0 {
		t.Fatalf("empty profile score: got %d want 0", got)
	}
}

func TestScoreEmailOnlyIsFive(t *testing.T) {
	fan := model.Fan{OwnerID: "owner-1", Email: "fan@example.com"}
	if got := Score(fan); got != 5 {
		t.Fatalf("email-only score: got %d want 5", got)
	}
}

func TestScoreNameAndEmailIsFifteen(t *testing.T) {
	fan := model.Fan{Name: "Ana", Email: "ana@example.com"}
	if got := Score(fan); got != 15 {
		t.Fatalf("name+email score: got %d want 15", got)
	}
}

func TestScoreAddressCountsOnPresenceAlone(t *testing.T) {
	fan := model.Fan{Address: &model.Address{}}
	if got := Score(fan); got != 10 {
		t.Fatalf("empty address object score: got %d want 10", got)
	}
}

func TestScoreFullProfileIsHundred(t *testing.T) {
	fan := fullProfile()
	if got := Score(fan); got != 100 {
		t.Fatalf("full profile score: got %d want 100", got)
	}
}

func TestScoreSocialAndEsportsAreCapped(t *testing.T) {
	fan := model.Fan{}
	for i := 0; i < 5; i++ {
		fan.SocialAccounts = append(fan.SocialAccounts, model.SocialAccount{
			Platform:  fmt.Sprintf("platform-%d", i),
			Connected: true,
		})
		fan.EsportsProfiles = append(fan.EsportsProfiles, model.EsportsProfile{
			Platform: fmt.Sprintf("platform-%d", i),
			Verified: true,
		})
	}

	if got := Score(fan); got != 30 {
		t.Fatalf("capped social+esports score: got %d want 30", got)
	}
}

func TestScoreSingleVerifiedDocumentCountsOnce(t *testing.T) {
	fan := model.Fan{
		Documents: []model.Document{
			{Number: "111", Verified: true},
			{Number: "222", Verified: true},
		},
	}
	if got := Score(fan); got != 10 {
		t.Fatalf("verified documents score: got %d want 10", got)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	fan := fullProfile()
	first := Score(fan)
	second := Score(fan)
	if first != second {
		t.Fatalf("score not idempotent: %d then %d", first, second)
	}
}

func TestScoreMonotonicallyNonDecreasing(t *testing.T) {
	base := model.Fan{Email: "fan@example.com"}
	baseline := Score(base)

	birth := time.Date(1999, time.May, 4, 0, 0, 0, 0, time.UTC)
	steps := []struct {
		name   string
		mutate func(f *model.Fan)
	}{
		{"name", func(f *model.Fan) { f.Name = "Ana" }},
		{"phone", func(f *model.Fan) { f.Phone = "+5511999999999" }},
		{"birth_date", func(f *model.Fan) { f.BirthDate = &birth }},
		{"address", func(f *model.Fan) { f.Address = &model.Address{City: "Sao Paulo"} }},
		{"cpf", func(f *model.Fan) { f.CPF = "12345678901" }},
		{"profile_image", func(f *model.Fan) { f.ProfileImageURL = "https://cdn/img.jpg" }},
		{"verified_document", func(f *model.Fan) {
			f.Documents = append(f.Documents, model.Document{Number: "1", Verified: true})
		}},
		{"connected_account", func(f *model.Fan) {
			f.SocialAccounts = append(f.SocialAccounts, model.SocialAccount{Platform: "twitter", Connected: true})
		}},
		{"verified_esports", func(f *model.Fan) {
			f.EsportsProfiles = append(f.EsportsProfiles, model.EsportsProfile{Platform: "twitch", Verified: true})
		}},
		{"favorite_game", func(f *model.Fan) { f.AddFavoriteGames("CS:GO") }},
		{"favorite_team", func(f *model.Fan) { f.AddFavoriteTeams("FURIA") }},
	}

	for _, step := range steps {
		next := base
		step.mutate(&next)
		if got := Score(next); got < baseline {
			t.Fatalf("adding %s decreased score: %d -> %d", step.name, baseline, got)
		}
	}
}

func TestScoreStaysInRange(t *testing.T) {
	fan := fullProfile()
	fan.AddFavoriteGames("G1", "G2", "G3", "G4", "G5", "G6", "G7")
	fan.AddFavoriteTeams("T1", "T2", "T3", "T4", "T5", "T6", "T7")
	fan.Documents = append(fan.Documents, model.Document{Number: "999", Verified: true})

	got := Score(fan)
	if got < 0 || got > 100 {
		t.Fatalf("score out of range: %d", got)
	}
	if got != 100 {
		t.Fatalf("over-full profile score: got %d want 100", got)
	}
}

func fullProfile() model.Fan {
	birth := time.Date(1995, time.March, 12, 0, 0, 0, 0, time.UTC)
	verifiedAt := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	fan := model.Fan{
		Name:            "Ana Souza",
		Email:           "ana@example.com",
		Phone:           "+5511999999999",
		BirthDate:       &birth,
		CPF:             "12345678901",
		Address:         &model.Address{City: "Sao Paulo", Country: "Brasil"},
		ProfileImageURL: "https://cdn.example.com/ana.jpg",
		Documents: []model.Document{
			{Type: enums.DocumentTypeIDCard, Number: "12345678901", Verified: true, VerificationDate: &verifiedAt},
		},
		SocialAccounts: []model.SocialAccount{
			{Platform: "twitter", Connected: true},
			{Platform: "instagram", Connected: true},
			{Platform: "facebook", Connected: true},
		},
		EsportsProfiles: []model.EsportsProfile{
			{Platform: "twitch", Verified: true},
			{Platform: "steam", Verified: true},
			{Platform: "faceit", Verified: true},
		},
	}
	fan.AddFavoriteGames("CS:GO", "Valorant", "League of Legends", "Dota 2", "Fortnite")
	fan.AddFavoriteTeams("FURIA", "Team Liquid", "Cloud9", "G2 Esports", "FaZe Clan")
	return fan
}
