package extract

import (
	"regexp"
	"strings"
)

const (
	minContentLength  = 50
	minDistinctTokens = 10
)

var tokenPattern = regexp.MustCompile(`[a-z]{3,}`)

// ValidateContent reports whether extracted text carries enough real words to
// be worth sending for analysis. Rejects near-empty and binary-garbage text:
// the trimmed content must be at least 50 characters and contain at least 10
// distinct case-folded word tokens of 3+ letters.
func ValidateContent(content string) bool {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < minContentLength {
		return false
	}

	seen := make(map[string]struct{})
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(trimmed), -1) {
		seen[tok] = struct{}{}
		if len(seen) >= minDistinctTokens {
			return true
		}
	}
	return false
}
