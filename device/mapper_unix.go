// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

//go:build unix

package device

import (
	"os"

	"golang.org/x/sys/unix"
)

// Map maps size bytes of physical memory at base, shared and writable.
func (mem *DevMem) Map(base uint64, size uint64) (window Window, err error) {
	file, err := os.OpenFile(mem.path(), os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return
	}
	defer file.Close()

	data, err := unix.Mmap(int(file.Fd()), int64(base), int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return
	}

	window = NewMapping(data, unix.Munmap)
	return
}
