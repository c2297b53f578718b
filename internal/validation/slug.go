package validation

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9\s_-]`)
	separatorRuns = regexp.MustCompile(`[\s_]+`)
	hyphenRuns    = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL-safe slug from an event title.
//
// Letters are transliterated to ASCII, everything outside letters, digits,
// whitespace and hyphens is dropped, whitespace runs become a single hyphen
// and repeated hyphens collapse. The result may be empty for titles made only
// of symbols.
func GenerateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(unidecode.Unidecode(title)))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = separatorRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if !slug.IsSlug(s) {
		return ""
	}
	return s
}

// NormalizeSlug prepares a caller-supplied slug for lookup.
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
