// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

//go:build !unix

package device

func (mem *DevMem) Map(base uint64, size uint64) (window Window, err error) {
	err = ErrMapUnsupported
	return
}
