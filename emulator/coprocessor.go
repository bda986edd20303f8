// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math"
	"sync"

	"github.com/ezrec/efac/accum"
	"github.com/ezrec/efac/device"
	"github.com/ezrec/efac/internal"
)

const (
	UNMAPPED = ^uint32(0) // Value loaded from outside every register window.
)

var _emulator_defines = map[string]string{
	"UNMAPPED": fmt.Sprintf("0x%x", UNMAPPED),
}

type posted struct {
	offset uintptr
	value  uint32
}

// Coprocessor emulates the accumulator coprocessor's register windows.
// Stores are posted, and only reach the registers on Publish.
type Coprocessor struct {
	Verbose bool        // If set, enables verbose logging.
	Bank    *accum.Bank // Register state.

	Stores    int // Total stores posted.
	Publishes int // Total publish barriers.

	mutex  sync.Mutex
	queue  []posted
	staged map[int]*accum.Snapshot
}

var _ device.Window = (*Coprocessor)(nil)

// NewCoprocessor creates an emulated coprocessor with registers cleared
// registers.
func NewCoprocessor(registers int) (cop *Coprocessor) {
	cop = &Coprocessor{
		Bank:   accum.NewBank(uint(registers)),
		staged: make(map[int]*accum.Snapshot),
	}

	return
}

// Defines returns an iterator over all of the defines
func (cop *Coprocessor) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		accum.Defines(),
		device.Defines(),
	)
}

// Pending returns the number of posted stores not yet published.
func (cop *Coprocessor) Pending() int {
	cop.mutex.Lock()
	defer cop.mutex.Unlock()

	return len(cop.queue)
}

// Load32 reads a slot. Only published state is visible.
func (cop *Coprocessor) Load32(offset uintptr) (value uint32) {
	cop.mutex.Lock()
	defer cop.mutex.Unlock()

	index, slot, ok := device.Decode(offset)
	if !ok {
		return UNMAPPED
	}

	reg, err := cop.Bank.Get(index)
	if err != nil {
		return UNMAPPED
	}

	switch {
	case slot == device.SLOT_READ:
		value = math.Float32bits(reg.Read())
	case slot >= device.SLOT_READ_ROUNDED && slot < device.SLOT_READ_ROUNDED+accum.ROUND_MODES:
		mode := accum.RoundingMode(slot - device.SLOT_READ_ROUNDED)
		value = math.Float32bits(reg.ReadRounded(mode))
	case slot >= device.SLOT_CONTROL && slot < device.SLOT_SNAPSHOT_END:
		snap := reg.Snapshot()
		value = snap[slot-device.SLOT_CONTROL]
	default:
		if cop.Verbose {
			log.Printf("emulator: register %d: load from slot %d ignored", index, slot)
		}
	}

	return
}

// Store32 posts a store.
func (cop *Coprocessor) Store32(offset uintptr, value uint32) {
	cop.mutex.Lock()
	defer cop.mutex.Unlock()

	cop.queue = append(cop.queue, posted{offset: offset, value: value})
	cop.Stores++
}

// Publish applies every posted store, in order.
func (cop *Coprocessor) Publish() {
	cop.mutex.Lock()
	defer cop.mutex.Unlock()

	for _, store := range cop.queue {
		cop.apply(store.offset, store.value)
	}
	cop.queue = cop.queue[:0]
	cop.Publishes++
}

// Close drops any unpublished stores.
func (cop *Coprocessor) Close() (err error) {
	cop.mutex.Lock()
	defer cop.mutex.Unlock()

	cop.queue = nil
	return
}

func (cop *Coprocessor) apply(offset uintptr, value uint32) {
	index, slot, ok := device.Decode(offset)
	if !ok {
		if cop.Verbose {
			log.Printf("emulator: unaligned store to 0x%x ignored", offset)
		}
		return
	}

	reg, err := cop.Bank.Get(index)
	if err != nil {
		if cop.Verbose {
			log.Printf("emulator: store to 0x%x: %v", offset, err)
		}
		return
	}

	switch {
	case slot >= device.SLOT_LANE && slot < device.SLOT_LANE+device.LANE_COUNT,
		slot >= device.SLOT_BATCH && slot < device.SLOT_BATCH+device.BATCH_COUNT:
		reg.Add(math.Float32frombits(value))
	case slot == device.SLOT_CONTROL:
		cop.control(index, reg, value)
	case slot > device.SLOT_CONTROL && slot < device.SLOT_SNAPSHOT_END:
		cop.stage(index)[slot-device.SLOT_CONTROL] = value
	default:
		if cop.Verbose {
			log.Printf("emulator: register %d: store to slot %d ignored", index, slot)
		}
	}
}

func (cop *Coprocessor) stage(index int) *accum.Snapshot {
	snap, ok := cop.staged[index]
	if !ok {
		snap = &accum.Snapshot{}
		cop.staged[index] = snap
	}
	return snap
}

// control clears the register, or commits its staged snapshot.
func (cop *Coprocessor) control(index int, reg *accum.Register, value uint32) {
	if value&accum.CONTROL_CLEAR != 0 {
		reg.Clear()
		if cop.Verbose {
			log.Printf("emulator: register %d cleared", index)
		}
		return
	}

	snap := cop.stage(index)
	snap[accum.SNAP_CONTROL] = value
	err := reg.Restore(snap)
	delete(cop.staged, index)
	if err != nil {
		reg.Poisoned = true
		log.Printf("emulator: %v", &ErrCommit{Register: index, Err: err})
		return
	}

	if cop.Verbose {
		log.Printf("emulator: register %d committed", index)
	}
}
