package validation

import (
	"regexp"
	"strings"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether input looks like local@domain.tld.
func IsValidEmail(input string) bool {
	return emailShape.MatchString(input)
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
