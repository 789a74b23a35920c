//go:build linux || darwin

package alloc

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapAllocator is a leaf Allocator backed by anonymous private
// mappings. Unlike HeapAllocator it gets a real out-of-memory signal
// from the kernel and returns pages to the OS on deallocation, at the
// cost of page-granular requests. Alignment up to the page size comes
// for free from the mapping; anything larger is rejected.
type MmapAllocator struct {
	pageSize uintptr
	live     map[uintptr][]byte
}

// NewMmap creates an mmap-backed allocator.
func NewMmap() *MmapAllocator {
	return &MmapAllocator{
		pageSize: uintptr(os.Getpagesize()),
		live:     make(map[uintptr][]byte),
	}
}

// AllocateRaw maps at least size bytes of zeroed memory. ENOMEM from the
// kernel surfaces as ErrOutOfMemory.
func (m *MmapAllocator) AllocateRaw(size, align uintptr) (Block, error) {
	if !isPowerOfTwo(align) {
		return Block{}, ErrBadAlign
	}
	if align > m.pageSize {
		return Block{}, &MisuseError{
			Msg: fmt.Sprintf("alignment %d exceeds page size %d", align, m.pageSize),
		}
	}
	if size == 0 {
		return NewBlock(noStorage(), 0, align), nil
	}
	mapLen := int(alignForward(size, m.pageSize))
	data, err := unix.Mmap(-1, 0, mapLen,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return Block{}, fmt.Errorf("%w: mmap %d bytes: %v", ErrOutOfMemory, size, err)
	}
	m.live[uintptr(unsafe.Pointer(&data[0]))] = data
	return NewBlock(unsafe.Pointer(&data[0]), size, align), nil
}

// DeallocateRaw unmaps the block's mapping. Blocks not produced by this
// instance are ignored.
func (m *MmapAllocator) DeallocateRaw(b Block) {
	base := uintptr(b.Ptr())
	data, ok := m.live[base]
	if !ok {
		return
	}
	delete(m.live, base)
	_ = unix.Munmap(data)
}

// OwnsBlock reports whether the block's address lies inside any live
// mapping of this allocator.
func (m *MmapAllocator) OwnsBlock(b Block) bool {
	p := uintptr(b.Ptr())
	for base, data := range m.live {
		if p >= base && p <= base+uintptr(len(data)) {
			return true
		}
	}
	return false
}

// Close unmaps every live mapping. Blocks handed out by this allocator
// are invalid afterwards.
func (m *MmapAllocator) Close() error {
	var first error
	for base, data := range m.live {
		delete(m.live, base)
		if err := unix.Munmap(data); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var (
	_ Allocator  = (*MmapAllocator)(nil)
	_ BlockOwner = (*MmapAllocator)(nil)
)
