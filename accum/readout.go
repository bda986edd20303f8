// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package accum

import (
	"math"
	"math/bits"
)

const (
	FLOAT_PRECISION = 24   // Significand bits of a float32.
	FLOAT_MIN_EXP   = -149 // Exponent of the smallest float32 subnormal.
)

// Read returns the register's value rounded to the nearest float32.
func (reg *Register) Read() float32 {
	return reg.ReadRounded(ROUND_NEAREST)
}

// ReadRounded returns the register's value rounded to a float32 with mode.
//
// A poisoned register reads as NaN, and a value beyond the float32 range reads
// as a signed infinity.
//
// The value is extracted as the 64-bit window of the most significant word
// that is not sign extension, and the word below it. Words further down only
// contribute a sticky bit, which the directed modes honor. ROUND_NEAREST
// decides ties on the window alone, so a tail below the window never breaks a
// tie. The hardware rounds the same way.
func (reg *Register) ReadRounded(mode RoundingMode) float32 {
	if reg.Poisoned {
		return float32(math.NaN())
	}

	negative := reg.Negative()

	live := reg.SatValue
	if negative {
		live = ^live
	}
	live = (live | ^reg.SatMask) & WORDS_MASK

	if live == 0 && !negative {
		return 0
	}

	top := max(HighestBit(live), 0)

	window := uint64(reg.Load(top)) << WORD_BITS
	if top > 0 {
		window |= uint64(reg.Load(top - 1))
	}
	lsb := (top-1)*WORD_BITS - REGISTER_BIAS
	sticky := !reg.lowerZero(top - 1)

	if negative {
		// Two's complement: the +1 only reaches the window if every word
		// below it is zero.
		var carry uint64
		if !sticky {
			carry = 1
		}
		window, carry = bits.Add64(^window, carry, 0)
		if carry != 0 {
			window = 1 << 63
			lsb++
		}
	}

	return narrow(window, lsb, sticky, negative, mode)
}

// narrow rounds magnitude * 2^lsb to a float32.
func narrow(magnitude uint64, lsb int, sticky bool, negative bool, mode RoundingMode) float32 {
	sign := 1.0
	if negative {
		sign = -1.0
	}

	if magnitude == 0 {
		return float32(math.Copysign(0, sign))
	}

	lead := lsb + bits.Len64(magnitude) - 1
	target := max(lead-(FLOAT_PRECISION-1), FLOAT_MIN_EXP)
	shift := target - lsb

	var q uint64
	switch {
	case shift <= 0:
		q = magnitude << -shift
	case shift > 64:
		// Everything is discarded, and lies below half a unit.
		if mode.roundUp(false, 0, 1, true, negative) {
			q = 1
		}
	case shift == 64:
		if mode.roundUp(false, magnitude, 1<<63, sticky, negative) {
			q = 1
		}
	default:
		q = magnitude >> shift
		rem := magnitude & (uint64(1)<<shift - 1)
		half := uint64(1) << (shift - 1)
		if mode.roundUp(q&1 == 1, rem, half, sticky, negative) {
			q++
		}
	}

	result := math.Ldexp(float64(q), target)
	if result > math.MaxFloat32 {
		return float32(math.Inf(int(sign)))
	}

	return float32(math.Copysign(result, sign))
}
