package scoring

import (
	"github.com/joaobatista235/know-your-fan/internal/domain/model"
)

const (
	namePoints         = 10
	emailPoints        = 5
	phonePoints        = 5
	birthDatePoints    = 5
	addressPoints      = 10
	cpfPoints          = 5
	profileImagePoints = 10

	verifiedDocumentPoints = 10

	socialAccountPoints = 5
	socialAccountCap    = 15

	esportsProfilePoints = 5
	esportsProfileCap    = 15

	favoriteGamesCap = 5
	favoriteTeamsCap = 5

	maxScore = 100
)

// Score computes the profile-completeness percentage for a fan aggregate.
// It is pure and deterministic; callers are expected to store the result on
// the aggregate after every mutation so the persisted value never goes stale.
//
// An address counts as present as soon as the object exists, even with all
// sub-fields empty. That mirrors the historical behavior of the scoring
// formula and is kept on purpose.
func Score(fan model.Fan) int {
	points := 0

	if fan.Name != "" {
		points += namePoints
	}
	if fan.Email != "" {
		points += emailPoints
	}
	if fan.Phone != "" {
		points += phonePoints
	}
	if fan.BirthDate != nil {
		points += birthDatePoints
	}
	if fan.Address != nil {
		points += addressPoints
	}
	if fan.CPF != "" {
		points += cpfPoints
	}
	if fan.ProfileImageURL != "" {
		points += profileImagePoints
	}

	for _, doc := range fan.Documents {
		if doc.Verified {
			points += verifiedDocumentPoints
			break
		}
	}

	connected := 0
	for _, account := range fan.SocialAccounts {
		if account.Connected {
			connected++
		}
	}
	points += capped(connected*socialAccountPoints, socialAccountCap)

	verifiedEsports := 0
	for _, profile := range fan.EsportsProfiles {
		if profile.Verified {
			verifiedEsports++
		}
	}
	points += capped(verifiedEsports*esportsProfilePoints, esportsProfileCap)

	points += capped(len(fan.FavoriteGames), favoriteGamesCap)
	points += capped(len(fan.FavoriteTeams), favoriteTeamsCap)

	return capped(points, maxScore)
}

func capped(value, limit int) int {
	if value > limit {
		return limit
	}
	return value
}
