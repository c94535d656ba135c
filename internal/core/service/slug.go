package service

import (
	"strings"
	"unicode"
)

// slugFallback is used when a title normalizes to nothing at all
// (empty or fully non-alphanumeric input).
const slugFallback = "article"

// Slugify normalizes a title into a lowercase URL-safe token: Unicode letters
// and digits are kept, every other run of characters collapses to a single
// dash. Non-ASCII titles keep their letters rather than being transliterated.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return slugFallback
	}
	return slug
}
