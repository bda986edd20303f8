// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"sync/atomic"
	"unsafe"
)

// Window is a byte addressed view of the coprocessor's register windows.
type Window interface {
	// Load32 reads the word at a byte offset.
	Load32(offset uintptr) uint32
	// Store32 writes the word at a byte offset. The store may be posted.
	Store32(offset uintptr, value uint32)
	// Publish makes every posted store visible to the coprocessor.
	Publish()
	// Close releases the window.
	Close() error
}

// Mapping is a Window over mapped memory.
type Mapping struct {
	data    []byte
	unmap   func([]byte) error
	barrier atomic.Uint32
}

var _ Window = (*Mapping)(nil)

// NewMapping wraps mapped memory. unmap is called on Close, and may be nil.
func NewMapping(data []byte, unmap func([]byte) error) *Mapping {
	return &Mapping{
		data:  data,
		unmap: unmap,
	}
}

// Size returns the size of the mapping in bytes.
func (mapping *Mapping) Size() int {
	return len(mapping.data)
}

// word returns the aligned word at offset, or nil if it lies outside the
// mapping.
func (mapping *Mapping) word(offset uintptr) *uint32 {
	if offset%WORD_BYTES != 0 || offset >= uintptr(len(mapping.data)) ||
		uintptr(len(mapping.data))-offset < WORD_BYTES {
		return nil
	}
	return (*uint32)(unsafe.Pointer(&mapping.data[offset]))
}

// Load32 reads a word. Offsets outside the mapping read as all ones, as an
// unclaimed bus read does.
func (mapping *Mapping) Load32(offset uintptr) uint32 {
	word := mapping.word(offset)
	if word == nil {
		return ^uint32(0)
	}
	return atomic.LoadUint32(word)
}

// Store32 writes a word. Stores outside the mapping are dropped.
func (mapping *Mapping) Store32(offset uintptr, value uint32) {
	word := mapping.word(offset)
	if word == nil {
		return
	}
	atomic.StoreUint32(word, value)
}

// Publish issues a locked read-modify-write, which drains the write combining
// buffers.
func (mapping *Mapping) Publish() {
	mapping.barrier.Add(1)
}

func (mapping *Mapping) Close() (err error) {
	if mapping.unmap != nil && mapping.data != nil {
		err = mapping.unmap(mapping.data)
	}
	mapping.data = nil

	return
}
