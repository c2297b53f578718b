package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var clockTime = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// NormalizeTime checks a 24-hour HH:MM clock time and returns it trimmed but
// otherwise unchanged.
func NormalizeTime(input string) (string, error) {
	s := strings.TrimSpace(input)
	if !clockTime.MatchString(s) {
		return "", fmt.Errorf("%w: invalid time format: %s", ErrInvalidFormat, input)
	}
	return s, nil
}
