package validate

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

func Email(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

// CPFDigits strips formatting punctuation and reports whether the rest is a
// well-formed 11 digit CPF number.
func CPFDigits(value string) (string, bool) {
	digits := strings.NewReplacer(".", "", "-", "", " ", "").Replace(strings.TrimSpace(value))
	if len(digits) != 11 {
		return digits, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return digits, false
		}
	}
	return digits, true
}
