// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package accum

import (
	"fmt"
	"iter"
	"maps"
)

const (
	BANK_SIZE = 8 // Default number of registers in a bank.
)

var _accum_defines = map[string]string{
	"BANK_SIZE":             fmt.Sprintf("%v", BANK_SIZE),
	"REGISTER_WORDS":        fmt.Sprintf("%v", REGISTER_WORDS),
	"WORD_OFFSET":           fmt.Sprintf("%v", WORD_OFFSET),
	"SNAPSHOT_WORDS":        fmt.Sprintf("%v", SNAPSHOT_WORDS),
	"CONTROL_POISONED":      fmt.Sprintf("0x%x", CONTROL_POISONED),
	"CONTROL_CLEAR":         fmt.Sprintf("0x%x", CONTROL_CLEAR),
	"CONTROL_DEFAULT":       fmt.Sprintf("0x%x", CONTROL_DEFAULT),
	"ROUND_NEAREST":         fmt.Sprintf("%d", ROUND_NEAREST),
	"ROUND_TOWARD_ZERO":     fmt.Sprintf("%d", ROUND_TOWARD_ZERO),
	"ROUND_AWAY_FROM_ZERO":  fmt.Sprintf("%d", ROUND_AWAY_FROM_ZERO),
	"ROUND_TOWARD_POSITIVE": fmt.Sprintf("%d", ROUND_TOWARD_POSITIVE),
	"ROUND_TOWARD_NEGATIVE": fmt.Sprintf("%d", ROUND_TOWARD_NEGATIVE),
}

// Defines returns an iterator over the accumulator layout constants.
func Defines() iter.Seq2[string, string] {
	return maps.All(_accum_defines)
}

// Accumulator is a bank of exact accumulator registers, in software or
// hardware.
type Accumulator interface {
	// Registers returns the number of registers.
	Registers() int
	// Clear resets a register to zero.
	Clear(reg int) error
	// Add folds a value into a register.
	Add(reg int, value float32) error
	// Subtract folds the negation of a value into a register.
	Subtract(reg int, value float32) error
	// Add4 folds four values into a register.
	Add4(reg int, a, b, c, d float32) error
	// Subtract4 folds the negation of four values into a register.
	Subtract4(reg int, a, b, c, d float32) error
	// Read returns the value of a register, rounded to nearest.
	Read(reg int) (float32, error)
	// ReadRounded returns the value of a register, rounded with mode.
	ReadRounded(reg int, mode RoundingMode) (float32, error)
	// Save returns the marshaled snapshot of a register.
	Save(reg int) ([]byte, error)
	// Restore loads a register from a marshaled snapshot.
	Restore(reg int, blob []byte) error
}

// Bank is a set of independent software accumulator registers.
type Bank struct {
	Register []Register
}

var _ Accumulator = (*Bank)(nil)

// NewBank creates a bank of count cleared registers.
func NewBank(count uint) (bank *Bank) {
	bank = &Bank{
		Register: make([]Register, count),
	}

	bank.Reset()

	return
}

// Reset clears every register in the bank.
func (bank *Bank) Reset() {
	for n := range bank.Register {
		bank.Register[n].Clear()
	}
}

// Registers returns the number of registers in the bank.
func (bank *Bank) Registers() int {
	return len(bank.Register)
}

// Get returns register index, for callers that own it exclusively.
func (bank *Bank) Get(index int) (reg *Register, err error) {
	if index < 0 || index >= len(bank.Register) {
		err = &ErrRegister{Index: index, Err: ErrRegisterInvalid}
		return
	}

	reg = &bank.Register[index]
	return
}

func (bank *Bank) Clear(index int) (err error) {
	reg, err := bank.Get(index)
	if err != nil {
		return
	}

	reg.Clear()
	return
}

func (bank *Bank) Add(index int, value float32) (err error) {
	reg, err := bank.Get(index)
	if err != nil {
		return
	}

	reg.Add(value)
	return
}

func (bank *Bank) Subtract(index int, value float32) (err error) {
	reg, err := bank.Get(index)
	if err != nil {
		return
	}

	reg.Subtract(value)
	return
}

func (bank *Bank) Add4(index int, a, b, c, d float32) (err error) {
	reg, err := bank.Get(index)
	if err != nil {
		return
	}

	reg.Add4(a, b, c, d)
	return
}

func (bank *Bank) Subtract4(index int, a, b, c, d float32) (err error) {
	reg, err := bank.Get(index)
	if err != nil {
		return
	}

	reg.Subtract4(a, b, c, d)
	return
}

func (bank *Bank) Read(index int) (value float32, err error) {
	return bank.ReadRounded(index, ROUND_NEAREST)
}

func (bank *Bank) ReadRounded(index int, mode RoundingMode) (value float32, err error) {
	reg, err := bank.Get(index)
	if err != nil {
		return
	}

	if !mode.Valid() {
		err = ErrRoundingMode
		return
	}

	value = reg.ReadRounded(mode)
	return
}

// Save returns the marshaled snapshot of register index.
func (bank *Bank) Save(index int) (blob []byte, err error) {
	reg, err := bank.Get(index)
	if err != nil {
		return
	}

	snap := reg.Snapshot()
	return snap.MarshalBinary()
}

// Restore loads register index from a marshaled snapshot.
func (bank *Bank) Restore(index int, blob []byte) (err error) {
	reg, err := bank.Get(index)
	if err != nil {
		return
	}

	var snap Snapshot
	err = snap.UnmarshalBinary(blob)
	if err != nil {
		return
	}

	err = reg.Restore(&snap)
	if err != nil {
		err = &ErrRegister{Index: index, Err: err}
	}

	return
}
