// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/efac/accum"
)

const (
	REGISTER_STRIDE = 4096 // Bytes per register window.
	WORD_BYTES      = 4    // Bytes per slot.

	SLOT_LANE         = 0   // First fold lane.
	LANE_COUNT        = 8   // Fold lanes, used round-robin.
	SLOT_BATCH        = 16  // First of the four batch fold slots.
	BATCH_COUNT       = 4   // Batch fold slots.
	SLOT_READ         = 0   // Native rounded result.
	SLOT_READ_ROUNDED = 24  // Result rounded by mode, one slot per mode.
	SLOT_CONTROL      = 512 // Control and status word, first snapshot word.
	SLOT_SNAPSHOT_END = SLOT_CONTROL + accum.SNAPSHOT_WORDS

	DEFAULT_VENDOR = 0x0007 // PCI vendor ID of the coprocessor.
	DEFAULT_DEVICE = 0x0007 // PCI device ID of the coprocessor.
)

var _device_defines = map[string]string{
	"REGISTER_STRIDE":   fmt.Sprintf("%v", REGISTER_STRIDE),
	"WORD_BYTES":        fmt.Sprintf("%v", WORD_BYTES),
	"SLOT_LANE":         fmt.Sprintf("%v", SLOT_LANE),
	"LANE_COUNT":        fmt.Sprintf("%v", LANE_COUNT),
	"SLOT_BATCH":        fmt.Sprintf("%v", SLOT_BATCH),
	"SLOT_READ":         fmt.Sprintf("%v", SLOT_READ),
	"SLOT_READ_ROUNDED": fmt.Sprintf("%v", SLOT_READ_ROUNDED),
	"SLOT_CONTROL":      fmt.Sprintf("%v", SLOT_CONTROL),
}

// Defines returns an iterator over the window layout constants.
func Defines() iter.Seq2[string, string] {
	return maps.All(_device_defines)
}

// Offset returns the byte offset of slot in the window of register reg.
func Offset(reg int, slot int) uintptr {
	return uintptr(reg)*REGISTER_STRIDE + uintptr(slot)*WORD_BYTES
}

// Decode splits a byte offset into a register and slot. The offset must be
// word aligned.
func Decode(offset uintptr) (reg int, slot int, ok bool) {
	if offset%WORD_BYTES != 0 {
		return
	}

	reg = int(offset / REGISTER_STRIDE)
	slot = int(offset%REGISTER_STRIDE) / WORD_BYTES
	ok = true
	return
}
