package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joaobatista235/know-your-fan/internal/domain/enums"
	"github.com/joaobatista235/know-your-fan/internal/domain/model"
)

type fakeOracle struct {
	docValid     bool
	docErr       error
	esportsValid bool
	esportsGames []string
	esportsErr   error
	docCalls     int
	esportsCalls int
}

func (f *fakeOracle) VerifyDocument(_ context.Context, _ string, _ enums.DocumentType, _ string) (DocumentResult, error) {
	f.docCalls++
	if f.docErr != nil {
		return DocumentResult{}, f.docErr
	}
	return DocumentResult{Valid: f.docValid}, nil
}

func (f *fakeOracle) VerifyEsportsProfile(_ context.Context, _, _, _ string) (EsportsResult, error) {
	f.esportsCalls++
	if f.esportsErr != nil {
		return EsportsResult{}, f.esportsErr
	}
	return EsportsResult{Valid: f.esportsValid, Games: f.esportsGames}, nil
}

func fixedLedger(oracle Oracle) *Ledger {
	ledger := NewLedger(oracle)
	ledger.now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
	return ledger
}

func TestSubmitDocumentIsIdempotentWhilePending(t *testing.T) {
	fan := &model.Fan{Documents: []model.Document{{Number: "123"}}}
	ledger := fixedLedger(nil)

	if err := ledger.SubmitDocument(fan, "123"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := ledger.SubmitDocument(fan, "123"); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if fan.Documents[0].Status != enums.VerificationStatusPending {
		t.Fatalf("unexpected status: %s", fan.Documents[0].Status)
	}
}

func TestSubmitUnknownRecordFails(t *testing.T) {
	fan := &model.Fan{}
	ledger := fixedLedger(nil)

	if err := ledger.SubmitDocument(fan, "nope"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if err := ledger.SubmitEsportsProfile(fan, "twitch"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestResubmitTerminalRecordResets(t *testing.T) {
	verifiedAt := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	fan := &model.Fan{
		Documents: []model.Document{{
			Number:           "123",
			Status:           enums.VerificationStatusVerified,
			Verified:         true,
			VerificationDate: &verifiedAt,
		}},
	}
	ledger := fixedLedger(nil)

	if err := ledger.SubmitDocument(fan, "123"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	doc := fan.Documents[0]
	if doc.Status != enums.VerificationStatusPending || doc.Verified || doc.VerificationDate != nil {
		t.Fatalf("terminal record not reset: %+v", doc)
	}
}

func TestResolveDocumentSuccess(t *testing.T) {
	fan := &model.Fan{Documents: []model.Document{{Number: "123", Status: enums.VerificationStatusPending}}}
	oracle := &fakeOracle{docValid: true}
	ledger := fixedLedger(oracle)

	valid, err := ledger.ResolveDocument(context.Background(), fan, "123")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !valid {
		t.Fatalf("expected valid outcome")
	}

	doc := fan.Documents[0]
	if !doc.Verified || doc.Status != enums.VerificationStatusVerified {
		t.Fatalf("document not verified: %+v", doc)
	}
	if doc.VerificationDate == nil || !doc.VerificationDate.Equal(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected verification date: %v", doc.VerificationDate)
	}
}

func TestResolveDocumentRejectionKeepsRecord(t *testing.T) {
	fan := &model.Fan{Documents: []model.Document{{Number: "123", Status: enums.VerificationStatusPending}}}
	ledger := fixedLedger(&fakeOracle{docValid: false})

	valid, err := ledger.ResolveDocument(context.Background(), fan, "123")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if valid {
		t.Fatalf("expected rejected outcome")
	}

	if len(fan.Documents) != 1 {
		t.Fatalf("rejected document removed from collection")
	}
	doc := fan.Documents[0]
	if doc.Verified || doc.Status != enums.VerificationStatusRejected || doc.VerificationDate != nil {
		t.Fatalf("unexpected rejected state: %+v", doc)
	}
}

func TestResolveDocumentOracleErrorLeavesRecordPending(t *testing.T) {
	fan := &model.Fan{Documents: []model.Document{{Number: "123", Status: enums.VerificationStatusPending}}}
	ledger := fixedLedger(&fakeOracle{docErr: errors.New("oracle down")})

	if _, err := ledger.ResolveDocument(context.Background(), fan, "123"); !errors.Is(err, ErrOracle) {
		t.Fatalf("expected ErrOracle, got %v", err)
	}
	if fan.Documents[0].Status != enums.VerificationStatusPending {
		t.Fatalf("record state changed on oracle failure: %+v", fan.Documents[0])
	}
}

func TestResolveEsportsProfileMergesGames(t *testing.T) {
	fan := &model.Fan{
		EsportsProfiles: []model.EsportsProfile{{Platform: "twitch", Status: enums.VerificationStatusPending}},
		FavoriteGames:   []string{"CS:GO"},
	}
	ledger := fixedLedger(&fakeOracle{esportsValid: true, esportsGames: []string{"CS:GO", "Valorant"}})

	valid, err := ledger.ResolveEsportsProfile(context.Background(), fan, "twitch")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !valid {
		t.Fatalf("expected valid outcome")
	}

	profile := fan.EsportsProfiles[0]
	if !profile.Verified || len(profile.Games) != 2 {
		t.Fatalf("unexpected profile state: %+v", profile)
	}
	if len(fan.FavoriteGames) != 2 {
		t.Fatalf("favorite games not deduplicated: %v", fan.FavoriteGames)
	}
}

func TestSimulatedOracleRejectsMalformedIDCardNumber(t *testing.T) {
	oracle := NewSeededOracle(1)

	result, err := oracle.VerifyDocument(context.Background(), "https://cdn/doc.jpg", enums.DocumentTypeIDCard, "not-a-cpf")
	if err != nil {
		t.Fatalf("verify document: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected malformed id card number to be rejected")
	}
	if result.Details["valid_format"] != false {
		t.Fatalf("expected valid_format=false in details: %v", result.Details)
	}
}

func TestSimulatedOracleDetectsGamesForPlatform(t *testing.T) {
	oracle := NewSeededOracle(7)

	result, err := oracle.VerifyEsportsProfile(context.Background(), "steam", "https://steamcommunity.com/id/ana", "ana")
	if err != nil {
		t.Fatalf("verify esports profile: %v", err)
	}
	if len(result.Games) == 0 || len(result.Games) > 4 {
		t.Fatalf("unexpected games count: %v", result.Games)
	}
	allowed := map[string]bool{"CS:GO": true, "Dota 2": true, "PUBG": true, "Apex Legends": true, "Team Fortress 2": true}
	for _, game := range result.Games {
		if !allowed[game] {
			t.Fatalf("game %q not in steam pool", game)
		}
	}
}
