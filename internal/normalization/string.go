package normalization

import (
	"strings"
	"unicode"
)

func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// ParseUsername lowercases, trims and strips characters that are unsafe as a
// stable user identifier, keeping letters, digits, '-' and '_'.
func ParseUsername(input string) string {
	normalized := ParseInputString(input)
	var b strings.Builder
	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
