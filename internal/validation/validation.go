package validation

import (
	"fmt"
	"math"
	"regexp"
)

// ErrInvalidID is returned for identifiers that fail ValidateID.
var ErrInvalidID = fmt.Errorf("invalid ID format")

// MaxIDLength bounds identifiers accepted from clients and imports.
const MaxIDLength = 64

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateID checks an entity identifier. Generated IDs are UUIDs, but
// imported ledgers carry their own keys ("gold-bot", "tx_0001"), so any
// non-empty token of letters, digits, '_', '-' and '.' up to MaxIDLength
// characters is accepted.
func ValidateID(id string) error {
	if id == "" || len(id) > MaxIDLength || !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// finite rejects NaN and the infinities, which JSON cannot carry but a
// programmatic caller could.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
