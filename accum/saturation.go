// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package accum

import (
	"math/bits"
)

// HighestBit returns the index of the most significant set bit of value, or -1
// if value is zero.
func HighestBit(value uint32) int {
	return bits.Len32(value) - 1
}

// HighestDiff returns the index of the most significant bit that differs
// between a and b, or -1 if they are equal.
func HighestDiff(a, b uint32) int {
	return HighestBit(a ^ b)
}

// propagate resolves a carry of +1 or -1 entering word index.
//
// Saturated words absorb a carry without changing state, or flip entirely, so
// the packed SatValue bits are used as an integer: add the carry at index, and
// the highest changed bit is the first word that stops the run. Only that
// boundary word is written.
func (reg *Register) propagate(index int, carry int) {
	var packed uint32
	if carry > 0 {
		// Unsaturated words read as zero, and stop a carry.
		packed = reg.SatValue & reg.SatMask
	} else {
		// Unsaturated words read as one, and stop a borrow.
		packed = reg.SatValue | ^reg.SatMask
	}

	next := packed + uint32(int32(carry))<<index
	top := HighestDiff(packed, next)

	switch {
	case top == WORD_BITS-1:
		// The run reached the sign extension: the sign changed.
		run := ^uint32(0) << index
		reg.SatValue = reg.SatValue&^run | next&run
		return
	case top >= REGISTER_WORDS:
		reg.Poisoned = true
		return
	}

	old := reg.Load(top)
	value := old + uint32(int32(carry))
	if top == REGISTER_WORDS-1 && (old^value)>>(WORD_BITS-1) != 0 {
		// The top word would change sign without a sign extension flip.
		reg.Poisoned = true
		return
	}

	run := (uint32(1)<<top - 1) &^ (uint32(1)<<index - 1)
	reg.SatValue = reg.SatValue&^run | next&run
	reg.store(top, value)
}

// lowerZero returns true if every word below index is zero.
func (reg *Register) lowerZero(index int) bool {
	if index <= 0 {
		return true
	}
	lower := uint32(1)<<index - 1
	return reg.SatMask&lower == lower && reg.SatValue&lower == 0
}
