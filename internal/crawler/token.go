package crawler

import (
	"regexp"
	"strings"
)

// TokenPrefix marks a canonical brand token.
const TokenPrefix = "b_"

var (
	tokenPattern  = regexp.MustCompile(`b_[A-Za-z0-9]+`)
	nonTokenChars = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// ExtractToken resolves a raw token or a storefront URL to a brand token.
// When no token can be found the identifier is reduced to [A-Za-z0-9_];
// the result may be empty.
func ExtractToken(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.HasPrefix(identifier, TokenPrefix) {
		return identifier
	}

	if match := tokenPattern.FindString(identifier); match != "" {
		return match
	}

	return nonTokenChars.ReplaceAllString(identifier, "")
}
