package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joaobatista235/know-your-fan/internal/domain/enums"
	"github.com/joaobatista235/know-your-fan/internal/domain/model"
)

var (
	ErrRecordNotFound = errors.New("verification record not found")
	ErrOracle         = errors.New("verification oracle failed")
)

// DocumentResult is the oracle's answer for a document check. A negative
// answer is a normal outcome (the record transitions to rejected), not an
// error; Err is reserved for the oracle call itself failing.
type DocumentResult struct {
	Valid   bool
	Details map[string]any
}

type EsportsResult struct {
	Valid   bool
	Games   []string
	Details map[string]any
}

type Oracle interface {
	VerifyDocument(ctx context.Context, url string, docType enums.DocumentType, number string) (DocumentResult, error)
	VerifyEsportsProfile(ctx context.Context, platform, profileURL, username string) (EsportsResult, error)
}

// Ledger drives the per-record verification lifecycle:
// unverified -> pending -> verified | rejected. Terminal records can be
// re-submitted, which resets them to unverified before going pending again.
// The ledger only mutates the in-memory aggregate; persisting the result is
// the caller's job, so a failed oracle call leaves the stored state untouched.
type Ledger struct {
	oracle Oracle
	now    func() time.Time
}

func NewLedger(oracle Oracle) *Ledger {
	return &Ledger{
		oracle: oracle,
		now:    time.Now,
	}
}

// SubmitDocument marks the document as pending. Calling it again on an
// unresolved record is a no-op.
func (l *Ledger) SubmitDocument(fan *model.Fan, number string) error {
	doc := fan.FindDocument(number)
	if doc == nil {
		return fmt.Errorf("document %q: %w", number, ErrRecordNotFound)
	}
	submit(&doc.Status, &doc.Verified, &doc.VerificationDate)
	return nil
}

// SubmitEsportsProfile marks the esports profile as pending, same contract
// as SubmitDocument.
func (l *Ledger) SubmitEsportsProfile(fan *model.Fan, platform string) error {
	profile := fan.FindEsportsProfile(platform)
	if profile == nil {
		return fmt.Errorf("esports profile %q: %w", platform, ErrRecordNotFound)
	}
	submit(&profile.Status, &profile.Verified, &profile.VerificationDate)
	return nil
}

// ResolveDocument calls the oracle for a pending document and applies the
// outcome. The oracle failing returns an error with the record left pending;
// the caller must not persist the aggregate in that case.
func (l *Ledger) ResolveDocument(ctx context.Context, fan *model.Fan, number string) (bool, error) {
	doc := fan.FindDocument(number)
	if doc == nil {
		return false, fmt.Errorf("document %q: %w", number, ErrRecordNotFound)
	}
	if l.oracle == nil {
		return false, fmt.Errorf("verification oracle is not configured")
	}

	result, err := l.oracle.VerifyDocument(ctx, doc.URL, doc.Type, doc.Number)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOracle, err)
	}

	l.ApplyDocumentResult(fan, number, result.Valid)
	return result.Valid, nil
}

// ResolveEsportsProfile calls the oracle for a pending esports profile and
// applies the outcome, merging detected games into the record and into the
// aggregate's favorite games.
func (l *Ledger) ResolveEsportsProfile(ctx context.Context, fan *model.Fan, platform string) (bool, error) {
	profile := fan.FindEsportsProfile(platform)
	if profile == nil {
		return false, fmt.Errorf("esports profile %q: %w", platform, ErrRecordNotFound)
	}
	if l.oracle == nil {
		return false, fmt.Errorf("verification oracle is not configured")
	}

	result, err := l.oracle.VerifyEsportsProfile(ctx, profile.Platform, profile.ProfileURL, profile.Username)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOracle, err)
	}

	l.ApplyEsportsResult(fan, platform, result.Valid, result.Games)
	return result.Valid, nil
}

// ApplyDocumentResult records the outcome of a document check. Rejected
// documents stay in the collection and remain queryable.
func (l *Ledger) ApplyDocumentResult(fan *model.Fan, number string, valid bool) {
	doc := fan.FindDocument(number)
	if doc == nil {
		return
	}
	if valid {
		now := l.now().UTC()
		doc.Status = enums.VerificationStatusVerified
		doc.Verified = true
		doc.VerificationDate = &now
		return
	}
	doc.Status = enums.VerificationStatusRejected
	doc.Verified = false
	doc.VerificationDate = nil
}

// ApplyEsportsResult records the outcome of an esports profile check.
func (l *Ledger) ApplyEsportsResult(fan *model.Fan, platform string, valid bool, games []string) {
	profile := fan.FindEsportsProfile(platform)
	if profile == nil {
		return
	}
	if !valid {
		profile.Status = enums.VerificationStatusRejected
		profile.Verified = false
		profile.VerificationDate = nil
		return
	}

	now := l.now().UTC()
	profile.Status = enums.VerificationStatusVerified
	profile.Verified = true
	profile.VerificationDate = &now
	for _, game := range games {
		game = strings.TrimSpace(game)
		if game == "" {
			continue
		}
		profile.Games = mergeAbsent(profile.Games, game)
		fan.AddFavoriteGames(game)
	}
}

func submit(status *enums.VerificationStatus, verified *bool, verificationDate **time.Time) {
	if *status == enums.VerificationStatusPending {
		return
	}
	*status = enums.VerificationStatusPending
	*verified = false
	*verificationDate = nil
}

func mergeAbsent(existing []string, value string) []string {
	for _, have := range existing {
		if have == value {
			return existing
		}
	}
	return append(existing, value)
}
