package device

import (
	"errors"

	"github.com/ezrec/efac/translate"
)

var f = translate.From

var (
	// Discovery errors
	ErrDeviceNotFound = errors.New(f("device not found"))
	ErrDeviceInvalid  = errors.New(f("device invalid"))

	// Mapping errors
	ErrMapUnsupported = errors.New(f("memory mapping unsupported"))
)

// ErrConfiguration reports the stage of Open that failed.
type ErrConfiguration struct {
	Stage string
	Err   error
}

func (err *ErrConfiguration) Error() string {
	return f("%v: %v", err.Stage, err.Err)
}

func (err *ErrConfiguration) Unwrap() error {
	return err.Err
}
