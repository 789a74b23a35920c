package alloc

import "unsafe"

// HeapAllocator is the leaf Allocator backed by the Go heap. It exists
// so a Scoped allocator has something to request its extent from when no
// other parent is in play.
//
// The Go runtime gives no recoverable out-of-memory signal for make, so
// unlike the mmap-backed leaf this allocator cannot report
// ErrOutOfMemory for exhaustion; the process aborts instead. It also
// cannot be stateless: a Block holds only an unsafe.Pointer, which does
// not keep the backing array reachable, so live extents are retained in
// a registry until DeallocateRaw drops them back to the collector.
type HeapAllocator struct {
	live map[uintptr][]byte
}

// NewHeap creates an empty heap-backed allocator.
func NewHeap() *HeapAllocator {
	return &HeapAllocator{live: make(map[uintptr][]byte)}
}

// DefaultHeap backs New. Like everything in this package it is not safe
// for concurrent use; allocators that must not share a lineage should
// use separate HeapAllocator instances.
var DefaultHeap = NewHeap()

// AllocateRaw obtains size bytes aligned to align from the Go heap.
// The backing array is over-allocated by align-1 bytes because make
// promises no particular alignment for byte slices.
func (h *HeapAllocator) AllocateRaw(size, align uintptr) (Block, error) {
	if !isPowerOfTwo(align) {
		return Block{}, ErrBadAlign
	}
	if size == 0 {
		return NewBlock(noStorage(), 0, align), nil
	}
	buf := make([]byte, size+align-1)
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := alignForward(base, align)
	h.live[aligned] = buf
	return NewBlock(unsafe.Add(unsafe.Pointer(&buf[0]), aligned-base), size, align), nil
}

// DeallocateRaw releases the block's backing array to the garbage
// collector. The block must be one previously returned by AllocateRaw
// on this instance; anything else is a no-op.
func (h *HeapAllocator) DeallocateRaw(b Block) {
	delete(h.live, uintptr(b.Ptr()))
}

// OwnsBlock reports whether the block's address lies inside any extent
// this allocator currently keeps alive.
func (h *HeapAllocator) OwnsBlock(b Block) bool {
	p := uintptr(b.Ptr())
	for base, buf := range h.live {
		if p >= base && p <= base+uintptr(len(buf)) {
			return true
		}
	}
	return false
}

var (
	_ Allocator  = (*HeapAllocator)(nil)
	_ BlockOwner = (*HeapAllocator)(nil)
)
