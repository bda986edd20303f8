// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package accum

import (
	"encoding/binary"
	"io"
)

const (
	SNAPSHOT_WORDS = 512                // Words in a register snapshot.
	SNAPSHOT_BYTES = SNAPSHOT_WORDS * 4 // Bytes in a marshaled snapshot.

	SNAP_CONTROL = 0                           // Control word.
	SNAP_LAYOUT  = 1                           // Register width, in words.
	SNAP_WORDS   = 2                           // First register word.
	SNAP_MASK    = SNAP_WORDS + REGISTER_WORDS // SatMask.
	SNAP_VALUE   = SNAP_MASK + 1               // SatValue.
)

const (
	CONTROL_POISONED     = uint32(1 << 0) // Register is poisoned.
	CONTROL_CLEAR        = uint32(1 << 2) // Clear command.
	CONTROL_OFFSET_SHIFT = 16             // Exponent word offset position.
	CONTROL_OFFSET_MASK  = uint32(0xff << CONTROL_OFFSET_SHIFT)

	// CONTROL_DEFAULT is the control word of a healthy register.
	CONTROL_DEFAULT = uint32(WORD_OFFSET << CONTROL_OFFSET_SHIFT)
)

// Snapshot is the raw saved state of a register. It is tied to the register
// width and is not portable across layouts.
type Snapshot [SNAPSHOT_WORDS]uint32

// Snapshot returns the saved state of the register.
func (reg *Register) Snapshot() (snap Snapshot) {
	snap[SNAP_CONTROL] = CONTROL_DEFAULT
	if reg.Poisoned {
		snap[SNAP_CONTROL] |= CONTROL_POISONED
	}
	snap[SNAP_LAYOUT] = REGISTER_WORDS

	words := reg.Words()
	copy(snap[SNAP_WORDS:SNAP_MASK], words[:])
	snap[SNAP_MASK] = reg.SatMask
	snap[SNAP_VALUE] = reg.SatValue

	return
}

// Restore loads the register from a snapshot. The register is unchanged if
// the snapshot is rejected.
func (reg *Register) Restore(snap *Snapshot) (err error) {
	control := snap[SNAP_CONTROL]
	if snap[SNAP_LAYOUT] != REGISTER_WORDS ||
		control&CONTROL_OFFSET_MASK != CONTROL_DEFAULT {
		err = ErrSnapshotLayout
		return
	}

	var tmp Register
	tmp.Clear()
	for n, word := range snap[SNAP_WORDS:SNAP_MASK] {
		tmp.store(n, word)
	}
	if tmp.Load(REGISTER_WORDS-1)>>(WORD_BITS-1) != 0 {
		tmp.SatValue |= ^WORDS_MASK
	}

	if tmp.SatMask != snap[SNAP_MASK] || tmp.SatValue != snap[SNAP_VALUE] {
		err = ErrSnapshotCorrupt
		return
	}

	tmp.Poisoned = control&CONTROL_POISONED != 0
	*reg = tmp

	return
}

// MarshalBinary encodes the snapshot, little-endian.
func (snap *Snapshot) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 0, SNAPSHOT_BYTES)
	for _, word := range snap {
		data = binary.LittleEndian.AppendUint32(data, word)
	}
	return
}

// UnmarshalBinary decodes a snapshot.
func (snap *Snapshot) UnmarshalBinary(data []byte) (err error) {
	if len(data) != SNAPSHOT_BYTES {
		err = ErrSnapshotSize
		return
	}

	for n := range snap {
		snap[n] = binary.LittleEndian.Uint32(data[n*4:])
	}

	return
}

// Marshal writes the snapshot to a writer.
func (snap *Snapshot) Marshal(file io.Writer) (err error) {
	data, err := snap.MarshalBinary()
	if err != nil {
		return
	}

	_, err = file.Write(data)
	return
}

// Unmarshal reads a snapshot from a reader.
func (snap *Snapshot) Unmarshal(file io.Reader) (err error) {
	data := make([]byte, SNAPSHOT_BYTES)
	_, err = io.ReadFull(file, data)
	if err == io.ErrUnexpectedEOF {
		err = ErrSnapshotSize
	}
	if err != nil {
		return
	}

	return snap.UnmarshalBinary(data)
}
