// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package accum

import (
	"strings"
)

// RoundingMode selects how a register's value is narrowed to a float32.
type RoundingMode int

//go:generate go tool stringer -linecomment -type=RoundingMode
const (
	ROUND_NEAREST         = RoundingMode(0) // nearest
	ROUND_TOWARD_ZERO     = RoundingMode(1) // zero
	ROUND_AWAY_FROM_ZERO  = RoundingMode(2) // away
	ROUND_TOWARD_POSITIVE = RoundingMode(3) // pinf
	ROUND_TOWARD_NEGATIVE = RoundingMode(4) // ninf
)

// ROUND_MODES is the number of rounding modes.
const ROUND_MODES = 5

// ParseRoundingMode returns the rounding mode named by text.
func ParseRoundingMode(text string) (mode RoundingMode, err error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for n := range ROUND_MODES {
		mode = RoundingMode(n)
		if mode.String() == text {
			return
		}
	}

	mode = ROUND_NEAREST
	err = ErrRoundingMode
	return
}

// Valid returns true for a known rounding mode.
func (mode RoundingMode) Valid() bool {
	return mode >= 0 && mode < ROUND_MODES
}

// roundUp decides if a truncated magnitude is incremented.
//
// The remainder is compared against half a unit for the nearest mode, and the
// sticky flag from below the extracted window is ignored there.
func (mode RoundingMode) roundUp(odd bool, rem, half uint64, sticky bool, negative bool) bool {
	inexact := rem != 0 || sticky

	switch mode {
	case ROUND_NEAREST:
		return rem > half || (rem == half && half != 0 && odd)
	case ROUND_TOWARD_ZERO:
		return false
	case ROUND_AWAY_FROM_ZERO:
		return inexact
	case ROUND_TOWARD_POSITIVE:
		return inexact && !negative
	case ROUND_TOWARD_NEGATIVE:
		return inexact && negative
	}

	return false
}
