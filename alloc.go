package alloc

import "unsafe"

// Alloc stores v inside the allocator and returns a handle to it.
// On failure the allocator is untouched and the caller still holds v
// (Go passes it by value), so a failed allocation can be retried against
// another allocator without losing the value.
func Alloc[T any](a Allocator, v T) (*Allocated[T], error) {
	blk, err := a.AllocateRaw(unsafe.Sizeof(v), unsafe.Alignof(v))
	if err != nil {
		return nil, err
	}
	p := (*T)(blk.Ptr())
	*p = v
	return newAllocated(a, p, blk), nil
}

// Make placement-constructs a T directly inside the allocator: the
// storage is zeroed, then init (if non-nil) fills it in through the
// pointer. The value is never materialized on the stack, which is the
// point; a multi-megabyte aggregate built with Alloc would transit the
// stack as an argument, with Make it never exists outside the extent.
func Make[T any](a Allocator, init func(*T)) (*Allocated[T], error) {
	size, align := sizeOf[T]()
	blk, err := a.AllocateRaw(size, align)
	if err != nil {
		return nil, err
	}
	if blk.Size() > 0 {
		clear(unsafe.Slice((*byte)(blk.Ptr()), blk.Size()))
	}
	p := (*T)(blk.Ptr())
	if init != nil {
		init(p)
	}
	return newAllocated(a, p, blk), nil
}

// AllocSlice allocates a zeroed slice of n elements of type T inside the
// allocator. Returns nil for n <= 0. The slice is only valid while the
// backing extent is.
func AllocSlice[T any](a Allocator, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	size, align := sizeOf[T]()
	blk, err := a.AllocateRaw(size*uintptr(n), align)
	if err != nil {
		return nil, err
	}
	if blk.Size() > 0 {
		clear(unsafe.Slice((*byte)(blk.Ptr()), blk.Size()))
	}
	return unsafe.Slice((*T)(blk.Ptr()), n), nil
}

// Owns reports whether the handle's value lives in memory produced by a.
// True for a root and for any scope descendant whose slice of the extent
// contains the value; false when a does not implement BlockOwner.
func Owns[T any](a Allocator, h *Allocated[T]) bool {
	if h == nil {
		return false
	}
	o, ok := a.(BlockOwner)
	return ok && o.OwnsBlock(h.block)
}

// sizeOf yields T's size and alignment without materializing a T; the
// unsafe operators do not evaluate their operand, so this stays cheap
// for arbitrarily large types.
func sizeOf[T any]() (size, align uintptr) {
	var p *T
	return unsafe.Sizeof(*p), unsafe.Alignof(*p)
}
