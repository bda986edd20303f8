// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"log"
	"math"
	"os"

	"github.com/ezrec/efac/accum"
)

// Config selects and maps a coprocessor. The zero value opens the default
// device through sysfs, /dev/mem and /proc/mtrr.
type Config struct {
	Verbose   bool   // If set, enables verbose logging.
	Vendor    uint16 // PCI vendor ID, defaults to DEFAULT_VENDOR.
	Device    uint16 // PCI device ID, defaults to DEFAULT_DEVICE.
	Registers int    // Registers to map, defaults to accum.BANK_SIZE.

	Locator       Locator       // Defaults to a SysfsLocator of SYSFS_PCI_DEVICES.
	Mapper        Mapper        // Defaults to DevMem.
	WriteCombiner WriteCombiner // Defaults to MtrrFile.
}

// Device is a bank of accumulator registers on a coprocessor.
type Device struct {
	Verbose bool   // If set, enables verbose logging.
	Window  Window // Register windows.

	lane []int // Next fold lane, per register.
}

var _ accum.Accumulator = (*Device)(nil)

// NewDevice binds registers on an existing window.
func NewDevice(window Window, registers int) (dev *Device) {
	dev = &Device{
		Window: window,
		lane:   make([]int, registers),
	}

	return
}

// Open locates, maps and binds a coprocessor.
func Open(config Config) (dev *Device, err error) {
	vendor := config.Vendor
	if vendor == 0 {
		vendor = DEFAULT_VENDOR
	}
	device := config.Device
	if device == 0 {
		device = DEFAULT_DEVICE
	}
	registers := config.Registers
	if registers <= 0 {
		registers = accum.BANK_SIZE
	}

	locator := config.Locator
	if locator == nil {
		locator = &SysfsLocator{FS: os.DirFS(SYSFS_PCI_DEVICES)}
	}
	mapper := config.Mapper
	if mapper == nil {
		mapper = &DevMem{}
	}
	combiner := config.WriteCombiner
	if combiner == nil {
		combiner = &MtrrFile{}
	}

	base, size, err := locator.Locate(vendor, device)
	if err != nil {
		err = &ErrConfiguration{Stage: f("locate"), Err: err}
		return
	}

	if config.Verbose {
		log.Printf("device: %04x:%04x base 0x%x size 0x%x", vendor, device, base, size)
	}

	if base == 0 || size < uint64(registers)*REGISTER_STRIDE {
		err = &ErrConfiguration{Stage: f("validate"), Err: ErrDeviceInvalid}
		return
	}

	window, err := mapper.Map(base, size)
	if err != nil {
		err = &ErrConfiguration{Stage: f("map"), Err: err}
		return
	}

	werr := combiner.SetWriteCombining(base, size)
	if werr != nil {
		log.Printf("device: write combining: %v", werr)
	}

	dev = NewDevice(window, registers)
	dev.Verbose = config.Verbose

	return
}

// Close releases the device window.
func (dev *Device) Close() error {
	return dev.Window.Close()
}

func (dev *Device) Registers() int {
	return len(dev.lane)
}

func (dev *Device) check(reg int) (err error) {
	if reg < 0 || reg >= len(dev.lane) {
		err = &accum.ErrRegister{Index: reg, Err: accum.ErrRegisterInvalid}
	}
	return
}

func (dev *Device) publish(reg int) {
	dev.Window.Publish()
	dev.lane[reg] = 0
}

func (dev *Device) Clear(reg int) (err error) {
	err = dev.check(reg)
	if err != nil {
		return
	}

	dev.Window.Store32(Offset(reg, SLOT_CONTROL), accum.CONTROL_DEFAULT|accum.CONTROL_CLEAR)
	dev.publish(reg)

	return
}

func (dev *Device) Add(reg int, value float32) (err error) {
	err = dev.check(reg)
	if err != nil {
		return
	}

	lane := dev.lane[reg]
	dev.Window.Store32(Offset(reg, SLOT_LANE+lane), math.Float32bits(value))
	lane++
	if lane == LANE_COUNT {
		dev.publish(reg)
	} else {
		dev.lane[reg] = lane
	}

	return
}

func (dev *Device) Subtract(reg int, value float32) (err error) {
	return dev.Add(reg, -value)
}

func (dev *Device) Add4(reg int, a, b, c, d float32) (err error) {
	err = dev.check(reg)
	if err != nil {
		return
	}

	for n, value := range [BATCH_COUNT]float32{a, b, c, d} {
		dev.Window.Store32(Offset(reg, SLOT_BATCH+n), math.Float32bits(value))
	}
	dev.publish(reg)

	return
}

func (dev *Device) Subtract4(reg int, a, b, c, d float32) (err error) {
	return dev.Add4(reg, -a, -b, -c, -d)
}

func (dev *Device) Read(reg int) (value float32, err error) {
	err = dev.check(reg)
	if err != nil {
		return
	}

	dev.publish(reg)
	value = math.Float32frombits(dev.Window.Load32(Offset(reg, SLOT_READ)))

	return
}

func (dev *Device) ReadRounded(reg int, mode accum.RoundingMode) (value float32, err error) {
	err = dev.check(reg)
	if err != nil {
		return
	}

	if !mode.Valid() {
		err = accum.ErrRoundingMode
		return
	}

	dev.publish(reg)
	value = math.Float32frombits(dev.Window.Load32(Offset(reg, SLOT_READ_ROUNDED+int(mode))))

	return
}

// Snapshot loads the live snapshot of a register.
func (dev *Device) Snapshot(reg int) (snap accum.Snapshot, err error) {
	err = dev.check(reg)
	if err != nil {
		return
	}

	dev.publish(reg)
	for n := range snap {
		snap[n] = dev.Window.Load32(Offset(reg, SLOT_CONTROL+n))
	}

	return
}

func (dev *Device) Save(reg int) (blob []byte, err error) {
	snap, err := dev.Snapshot(reg)
	if err != nil {
		return
	}

	return snap.MarshalBinary()
}

// Restore stages a snapshot into the register's save area and commits it.
// The snapshot is validated before the register is touched.
func (dev *Device) Restore(reg int, blob []byte) (err error) {
	err = dev.check(reg)
	if err != nil {
		return
	}

	var snap accum.Snapshot
	err = snap.UnmarshalBinary(blob)
	if err != nil {
		return
	}

	var tmp accum.Register
	err = tmp.Restore(&snap)
	if err != nil {
		err = &accum.ErrRegister{Index: reg, Err: err}
		return
	}

	for n := 1; n < len(snap); n++ {
		dev.Window.Store32(Offset(reg, SLOT_CONTROL+n), snap[n])
	}
	dev.Window.Store32(Offset(reg, SLOT_CONTROL), snap[0]&^accum.CONTROL_CLEAR)
	dev.publish(reg)

	if dev.Verbose {
		log.Printf("device: register %d restored", reg)
	}

	return
}
