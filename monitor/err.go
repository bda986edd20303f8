package monitor

import (
	"errors"

	"github.com/ezrec/efac/translate"
)

var f = translate.From

var (
	ErrNoWindow       = errors.New(f("no raw window"))
	ErrCommandUnknown = errors.New(f("command unknown"))
	ErrCommandArgs    = errors.New(f("wrong number of arguments"))
)

// ErrParseExpression reports an argument that did not evaluate.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("expression %v invalid", string(err))
}

// ErrCommand reports the command that failed.
type ErrCommand struct {
	Command string
	Err     error
}

func (err *ErrCommand) Error() string {
	return f("%v: %v", err.Command, err.Err)
}

func (err *ErrCommand) Unwrap() error {
	return err.Err
}
