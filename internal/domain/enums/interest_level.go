package enums

type InterestLevel string

const (
	InterestLevelLow    InterestLevel = "low"
	InterestLevelMedium InterestLevel = "medium"
	InterestLevelHigh   InterestLevel = "high"
)

func ParseInterestLevel(raw string) (InterestLevel, bool) {
	switch InterestLevel(raw) {
	case InterestLevelLow, InterestLevelMedium, InterestLevelHigh:
		return InterestLevel(raw), true
	default:
		return "", false
	}
}
