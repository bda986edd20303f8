// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"io/fs"
	"path"
	"regexp"
	"strconv"
	"strings"
)

const (
	SYSFS_PCI_DEVICES = "/sys/bus/pci/devices" // Default PCI device directory.
)

// Locator finds the first memory region of a PCI device.
type Locator interface {
	Locate(vendor, device uint16) (base uint64, size uint64, err error)
}

// SysfsLocator scans a sysfs PCI device directory.
type SysfsLocator struct {
	FS fs.FS // Rooted at the PCI device directory.
}

var _ Locator = (*SysfsLocator)(nil)

var pciAddress = regexp.MustCompile(`^(?i)[0-9a-f]{4}:[0-9a-f]{2}:[0-9a-f]{2}\.[0-7]$`)

func readHex(filesys fs.FS, name string, bitSize int) (value uint64, err error) {
	data, err := fs.ReadFile(filesys, name)
	if err != nil {
		return
	}

	return strconv.ParseUint(strings.TrimSpace(string(data)), 0, bitSize)
}

// Locate returns BAR0 of the first device that matches vendor and device.
func (loc *SysfsLocator) Locate(vendor, device uint16) (base uint64, size uint64, err error) {
	entries, err := fs.ReadDir(loc.FS, ".")
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !pciAddress.MatchString(name) {
			continue
		}

		id, err := readHex(loc.FS, path.Join(name, "vendor"), 16)
		if err != nil || uint16(id) != vendor {
			continue
		}
		id, err = readHex(loc.FS, path.Join(name, "device"), 16)
		if err != nil || uint16(id) != device {
			continue
		}

		return loc.resource(name)
	}

	err = ErrDeviceNotFound
	return
}

// resource parses the first line of a device's resource file.
func (loc *SysfsLocator) resource(name string) (base uint64, size uint64, err error) {
	data, err := fs.ReadFile(loc.FS, path.Join(name, "resource"))
	if err != nil {
		return
	}

	line, _, _ := strings.Cut(string(data), "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		err = ErrDeviceInvalid
		return
	}

	start, err := strconv.ParseUint(fields[0], 0, 64)
	if err != nil {
		return
	}
	end, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return
	}

	base = start
	if start != 0 && end >= start {
		size = end - start + 1
	}

	return
}
