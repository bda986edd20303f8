// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

const (
	DEV_MEM = "/dev/mem" // Default physical memory device.
)

// Mapper maps a physical memory region as a Window.
type Mapper interface {
	Map(base uint64, size uint64) (Window, error)
}

// DevMem maps physical memory through a memory device.
type DevMem struct {
	Path string // Defaults to DEV_MEM.
}

var _ Mapper = (*DevMem)(nil)

func (mem *DevMem) path() string {
	if len(mem.Path) == 0 {
		return DEV_MEM
	}
	return mem.Path
}
