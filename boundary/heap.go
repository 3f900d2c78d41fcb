package boundary

import (
	"sync"

	evdsbridge "github.com/wippyai/evds-bridge"
	"github.com/wippyai/evds-bridge/errors"
)

// Heap is a slice-backed Memory and Allocator for in-process embedders and
// tests: a caller that lives in the same process still talks to the bridge
// through descriptors, it just owns a private heap to put them in.
//
// Allocation is a bump pointer with a live-set; Free of an unknown pointer
// is a no-op so that releasing a null or already-degraded result stays safe.
// Offset 0 is never handed out and acts as the null pointer.
type Heap struct {
	mu   sync.Mutex
	data []byte
	next uint32
	live map[uint32]uint32
}

var (
	_ evdsbridge.Memory    = (*Heap)(nil)
	_ evdsbridge.Allocator = (*Heap)(nil)
)

// NewHeap creates a heap of the given byte size.
func NewHeap(size uint32) *Heap {
	return &Heap{
		data: make([]byte, size),
		next: 8,
		live: make(map[uint32]uint32),
	}
}

func (h *Heap) Read(offset, length uint32) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	end := uint64(offset) + uint64(length)
	if end > uint64(len(h.data)) {
		return nil, errors.OutOfBounds("heap", offset, length)
	}
	out := make([]byte, length)
	copy(out, h.data[offset:end])
	return out, nil
}

func (h *Heap) Write(offset uint32, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	end := uint64(offset) + uint64(len(data))
	if end > uint64(len(h.data)) {
		return errors.OutOfBounds("heap", offset, uint32(len(data)))
	}
	copy(h.data[offset:end], data)
	return nil
}

func (h *Heap) Alloc(size uint32) (uint32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if size == 0 {
		return 0, errors.AllocationFailed(0)
	}
	end := uint64(h.next) + uint64(size)
	if end > uint64(len(h.data)) {
		return 0, errors.AllocationFailed(size)
	}
	ptr := h.next
	h.next = uint32(end)
	h.live[ptr] = size
	return ptr, nil
}

func (h *Heap) Free(ptr, size uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.live, ptr)
}

// Place copies data into a fresh allocation. Convenience for embedders
// preparing input descriptors.
func (h *Heap) Place(data string) (Input, error) {
	ptr, err := h.Alloc(uint32(len(data)))
	if err != nil {
		return Input{}, err
	}
	if err := h.Write(ptr, []byte(data)); err != nil {
		h.Free(ptr, uint32(len(data)))
		return Input{}, err
	}
	return Input{Ptr: ptr, Len: uint32(len(data))}, nil
}

// Live returns the number of outstanding allocations. Used by tests to
// prove the alloc/release pairing leaks nothing.
func (h *Heap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}
