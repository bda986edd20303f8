// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package backend opens the accumulator selected on a command line.
package backend

import (
	"errors"

	"github.com/ezrec/efac/accum"
	"github.com/ezrec/efac/device"
	"github.com/ezrec/efac/emulator"
	"github.com/ezrec/efac/translate"
)

var f = translate.From

const (
	SOFT    = "soft"    // Software registers.
	EMULATE = "emulate" // Device binding over the emulated coprocessor.
	DEVICE  = "device"  // Device binding over the real coprocessor.
)

var ErrBackendUnknown = errors.New(f("backend unknown"))

// Backend is an open accumulator, with its raw window if it has one.
type Backend struct {
	Acc    accum.Accumulator
	Window device.Window
}

// Open opens the named backend.
func Open(name string, verbose bool) (backend *Backend, err error) {
	switch name {
	case SOFT:
		backend = &Backend{Acc: accum.NewBank(accum.BANK_SIZE)}
	case EMULATE:
		cop := emulator.NewCoprocessor(accum.BANK_SIZE)
		cop.Verbose = verbose
		dev := device.NewDevice(cop, accum.BANK_SIZE)
		dev.Verbose = verbose
		backend = &Backend{Acc: dev, Window: cop}
	case DEVICE:
		var dev *device.Device
		dev, err = device.Open(device.Config{Verbose: verbose})
		if err != nil {
			return
		}
		backend = &Backend{Acc: dev, Window: dev.Window}
	default:
		err = ErrBackendUnknown
	}

	return
}

// Close releases the backend's window.
func (backend *Backend) Close() (err error) {
	if backend.Window != nil {
		err = backend.Window.Close()
	}
	return
}
