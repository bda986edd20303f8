// Package accum implements the exact floating-point accumulator.
//
// A Register holds the running sum of any number of float32 additions and
// subtractions as a wide two's-complement fixed-point number, so no rounding
// happens while folding. The sum is rounded only on readout, under one of the
// RoundingMode policies.
//
// Each register carries two packed 32-bit fields, SatMask and SatValue, which
// mark the words that are entirely zero or entirely one. Carries that run
// through such words are resolved with a single packed add instead of a word
// by word scan.
//
// A Bank is a fixed set of independent registers. A register is not safe for
// concurrent folds; distinct registers may be used from distinct goroutines.
package accum
