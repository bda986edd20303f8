// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package accum

const (
	REGISTER_WORDS = 23 // Words per register.
	WORD_BITS      = 32 // Bits per register word.

	EXPONENT_BIAS = 126                                                  // Added to the Frexp exponent of a float32.
	MANTISSA_BITS = 25                                                   // Mantissa width, one guard bit over binary32.
	WORD_OFFSET   = REGISTER_WORDS/2 - 4                                 // Word holding the smallest normal mantissa.
	REGISTER_BIAS = WORD_OFFSET*WORD_BITS + EXPONENT_BIAS + MANTISSA_BITS // Weight exponent of bit zero, negated.

	// Mask of the SatMask/SatValue bits that track real words. The bits above
	// track the sign extension.
	WORDS_MASK = uint32(1)<<REGISTER_WORDS - 1
	SIGN_BIT   = uint32(1) << REGISTER_WORDS
)

// Register is a single exact accumulator.
//
// Bit b of word w has a weight of 2^(32*w + b - REGISTER_BIAS). The words are
// read through Load or Words: a word flagged in SatMask is the matching
// SatValue bit extended to all 32 bits, whatever its raw storage holds.
type Register struct {
	SatMask  uint32 // Bit w set if word w is all zeros or all ones.
	SatValue uint32 // Bit w set if saturated word w is all ones.
	Poisoned bool   // Set by NaN, infinity or overflow.

	word [REGISTER_WORDS]uint32 // Raw word storage.
}

// Clear resets the register to zero.
func (reg *Register) Clear() {
	clear(reg.word[:])
	reg.SatMask = ^uint32(0)
	reg.SatValue = 0
	reg.Poisoned = false
}

// Negative returns true if the register holds a negative value.
func (reg *Register) Negative() bool {
	return reg.SatValue&SIGN_BIT != 0
}

// Zero returns true if the register holds exactly zero.
func (reg *Register) Zero() bool {
	return reg.SatMask&WORDS_MASK == WORDS_MASK && reg.SatValue&(WORDS_MASK|SIGN_BIT) == 0
}

// Load returns the logical value of word index.
func (reg *Register) Load(index int) uint32 {
	bit := uint32(1) << index
	if reg.SatMask&bit == 0 {
		return reg.word[index]
	}
	if reg.SatValue&bit == 0 {
		return 0
	}
	return ^uint32(0)
}

// Words returns the logical value of every word.
func (reg *Register) Words() (words [REGISTER_WORDS]uint32) {
	for n := range words {
		words[n] = reg.Load(n)
	}
	return
}

// store writes word index and updates its saturation state.
func (reg *Register) store(index int, value uint32) {
	bit := uint32(1) << index

	reg.word[index] = value
	switch value {
	case 0:
		reg.SatMask |= bit
		reg.SatValue &^= bit
	case ^uint32(0):
		reg.SatMask |= bit
		reg.SatValue |= bit
	default:
		reg.SatMask &^= bit
		reg.SatValue &^= bit
	}
}
