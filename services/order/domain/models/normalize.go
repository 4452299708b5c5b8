package models

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// uuidPattern is the canonical 8-4-4-4-12 hexadecimal grouping, case-insensitive.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidID reports whether s is a syntactically valid UUID.
func ValidID(s string) bool {
	return uuidPattern.MatchString(s)
}

// TitleCase trims and lowercases s, then uppercases the first letter of each
// whitespace-delimited word. Idempotent: TitleCase(TitleCase(s)) == TitleCase(s).
func TitleCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TrimText strips surrounding whitespace. A missing value is the empty string.
func TrimText(s string) string {
	return strings.TrimSpace(s)
}

// Round2 rounds to two decimal places, the precision orders are stored at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
