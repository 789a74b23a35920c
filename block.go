package alloc

import "unsafe"

// Block describes a contiguous byte range handed out by an Allocator:
// base address, size in bytes, and the alignment it was requested with.
// A Block carries no ownership of its own; it is a token passed between
// allocator operations. Heap-style allocators need the exact
// (ptr, size, align) triple back on deallocation, so callers must
// preserve it.
type Block struct {
	ptr   unsafe.Pointer
	size  uintptr
	align uintptr
}

// NewBlock builds a Block descriptor. It does not allocate.
func NewBlock(ptr unsafe.Pointer, size, align uintptr) Block {
	return Block{ptr: ptr, size: size, align: align}
}

// Ptr returns the base address of the block.
func (b Block) Ptr() unsafe.Pointer { return b.ptr }

// Size returns the block size in bytes.
func (b Block) Size() uintptr { return b.size }

// Align returns the alignment the block was requested with.
func (b Block) Align() uintptr { return b.align }

// Allocator is the capability every allocator in this package implements:
// raw byte allocation and deallocation of Blocks. The typed helpers
// (Alloc, Make, AllocSlice, Owns) are expressed purely in terms of these
// two primitives, so every implementation gets them for free.
//
// AllocateRaw requests size bytes aligned to align (a power of two). It
// must be side-effect-free on failure. Zero-size requests always succeed
// and return a block with no reachable storage.
//
// DeallocateRaw releases a previously obtained block back to the
// allocator. Bump-style allocators treat this as a best-effort LIFO fast
// path: the cursor retreats only if the block is exactly the most recent
// allocation, otherwise the call is a no-op and the memory is reclaimed
// in bulk when the scope rolls back.
type Allocator interface {
	AllocateRaw(size, align uintptr) (Block, error)
	DeallocateRaw(b Block)
}

// BlockOwner is an optional capability: report whether a Block came from
// this allocator instance. The answer is advisory, for assertions and
// diagnostics; it grants no rights over the block.
type BlockOwner interface {
	OwnsBlock(b Block) bool
}

// alignForward rounds addr up to the next multiple of align.
// align must be a power of two.
func alignForward(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// noStorageByte backs zero-size blocks. Zero-size allocations must
// succeed without reserving extent space, and the address must be
// non-nil so it never collides with the suspension sentinel.
var noStorageByte byte

func noStorage() unsafe.Pointer { return unsafe.Pointer(&noStorageByte) }

func isPowerOfTwo(v uintptr) bool { return v != 0 && v&(v-1) == 0 }
