// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"fmt"
	"os"
)

const (
	PROC_MTRR = "/proc/mtrr" // Default MTRR control file.
)

// WriteCombiner marks a physical memory region as write combining.
type WriteCombiner interface {
	SetWriteCombining(base uint64, size uint64) error
}

// MtrrFile sets write combining through the kernel's MTRR control file.
type MtrrFile struct {
	Path string // Defaults to PROC_MTRR.
}

var _ WriteCombiner = (*MtrrFile)(nil)

func (mtrr *MtrrFile) SetWriteCombining(base uint64, size uint64) (err error) {
	name := mtrr.Path
	if len(name) == 0 {
		name = PROC_MTRR
	}

	file, err := os.OpenFile(name, os.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	_, err = fmt.Fprintf(file, "base=0x%08x size=0x%08x type=write-combining\n", base, size)
	return
}
