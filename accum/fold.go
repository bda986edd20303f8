// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package accum

import (
	"math"
	"math/bits"
)

// Add folds value into the register.
//
// Zero is a no-op. NaN and infinities poison the register, and a poisoned
// register ignores all folds until it is cleared.
func (reg *Register) Add(value float32) {
	if reg.Poisoned {
		return
	}

	if math.IsNaN(float64(value)) || math.IsInf(float64(value), 0) {
		reg.Poisoned = true
		return
	}

	if value == 0 {
		return
	}

	frac, exp := math.Frexp(float64(value))
	mant := int64(frac * (1 << MANTISSA_BITS))

	pos := WORD_OFFSET
	exp += EXPONENT_BIAS
	if exp < 0 {
		// Subnormal: the low mantissa bits are zero, so the shift is exact.
		mant >>= -exp
	} else {
		pos += exp >> 5
		mant <<= exp & (WORD_BITS - 1)
	}

	old := uint64(reg.Load(pos+1))<<WORD_BITS | uint64(reg.Load(pos))
	sum, carry := bits.Add64(old, uint64(mant), 0)
	reg.store(pos, uint32(sum))
	reg.store(pos+1, uint32(sum>>WORD_BITS))

	// The addend is sign extended above pos+1.
	net := int(carry)
	if mant < 0 {
		net--
	}

	if net != 0 {
		reg.propagate(pos+2, net)
	}
}

// Subtract folds the negation of value into the register.
func (reg *Register) Subtract(value float32) {
	reg.Add(-value)
}

// Add4 folds four values into the register.
func (reg *Register) Add4(a, b, c, d float32) {
	reg.Add(a)
	reg.Add(b)
	reg.Add(c)
	reg.Add(d)
}

// Subtract4 folds the negation of four values into the register.
func (reg *Register) Subtract4(a, b, c, d float32) {
	reg.Add(-a)
	reg.Add(-b)
	reg.Add(-c)
	reg.Add(-d)
}
