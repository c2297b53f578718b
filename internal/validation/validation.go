// Package validation holds the pure normalization helpers applied to event
// and booking fields before they are persisted.
package validation

import "errors"

// ErrInvalidFormat is returned when an input cannot be parsed into its
// canonical form.
var ErrInvalidFormat = errors.New("invalid format")
