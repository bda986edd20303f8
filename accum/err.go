package accum

import (
	"errors"

	"github.com/ezrec/efac/translate"
)

var f = translate.From

var (
	// Bank errors
	ErrRegisterInvalid = errors.New(f("register invalid"))

	// Snapshot errors
	ErrSnapshotSize    = errors.New(f("snapshot size invalid"))
	ErrSnapshotLayout  = errors.New(f("snapshot layout mismatch"))
	ErrSnapshotCorrupt = errors.New(f("snapshot corrupt"))

	// Rounding errors
	ErrRoundingMode = errors.New(f("rounding mode invalid"))
)

// ErrRegister reports a failed operation on a specific register.
type ErrRegister struct {
	Index int
	Err   error
}

func (err *ErrRegister) Error() string {
	return f("register %d %v", err.Index, err.Err)
}

func (err *ErrRegister) Unwrap() error {
	return err.Err
}
