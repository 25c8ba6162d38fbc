package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize collapses runs of whitespace into single spaces, strips
// control characters and trims the ends. Free-text contact fields go through
// this before storage.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			// drop
		default:
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizePhone(phone string) string {
	var result strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		if unicode.IsDigit(r) || r == '+' || r == ' ' || r == '-' || r == '(' || r == ')' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
