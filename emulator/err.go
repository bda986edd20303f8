package emulator

import (
	"github.com/ezrec/efac/translate"
)

var f = translate.From

// ErrCommit reports a rejected snapshot commit.
type ErrCommit struct {
	Register int
	Err      error
}

func (err *ErrCommit) Error() string {
	return f("register %d commit %v", err.Register, err.Err)
}

func (err *ErrCommit) Unwrap() error {
	return err.Err
}
