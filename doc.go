// Package alloc implements a composable scoped bump allocator for Go.
//
// # Overview
//
// A bump (arena) allocator serves requests by advancing a single cursor
// through a preallocated extent. This package adds nested scopes on top:
// entering a scope suspends the parent allocator, hands the closure a
// fresh allocator over the unused tail of the same extent, and reclaims
// everything the closure allocated in O(1) when it returns — the same
// discipline as a call-stack frame. This is useful for:
//
//   - Phase-structured work where each phase's temporaries die together
//   - Deeply recursive processing with per-level scratch memory
//   - Bounding the memory of a subcomputation to a fixed extent
//   - Reducing garbage collection pressure for short-lived objects
//
// # Basic usage
//
//	a, err := alloc.New(1 << 20) // 1 MiB extent from the Go heap
//	if err != nil { ... }
//	defer a.Close()
//
//	// Typed allocation: the value lives inside the extent.
//	h, err := alloc.Alloc(a, MyStruct{...})
//	h.Get().Field = 42
//
//	// A nested scope: everything inner allocates is reclaimed at once
//	// when the closure returns.
//	err = a.Scope(func(inner *alloc.Scoped) error {
//		tmp, err := alloc.AllocSlice[byte](inner, 4096)
//		...
//		return nil
//	})
//
// # Composition
//
// Scoped is generic over its backing: NewFrom accepts any Allocator, so
// a Scoped can sit on the Go heap (HeapAllocator), on anonymous mappings
// (MmapAllocator, unix only), or on another Scoped. Allocator is two
// methods — AllocateRaw and DeallocateRaw over Block descriptors — and
// the typed layer (Alloc, Make, AllocSlice, Owns) is derived purely from
// them, so custom implementations get it for free.
//
// # The scope protocol
//
// While a scope closure runs, the parent allocator is suspended:
// allocating through it fails with ErrSuspended instead of corrupting
// the child's memory. At most one scope may be live per instance. On
// every exit path, including a panic unwinding out of the closure, the
// child's pending finalizers run before the cursor rolls back, and the
// root's Close runs remaining finalizers before the extent returns to
// the parent — values are always destructed before their memory goes
// away.
//
// # Thread safety
//
// Nothing in this package is safe for concurrent use. The allocator is
// single-threaded by design: the suspension flag is a protocol check for
// one logical thread of control, not a lock. Keep an allocator lineage
// (a root and its scope descendants) on one goroutine.
//
// # Important notes
//
//   - Allocated memory is only valid while its extent is; handles and
//     slices created inside a scope must not escape the closure
//   - DeallocateRaw is a best-effort LIFO fast path, not a free list;
//     bulk reclamation happens at scope exit and Close
//   - Alloc and AllocSlice zero or copy-initialize storage; Make zeroes
//     and then constructs in place without a stack copy
//   - Allocation failure is an ordinary error value: ErrOutOfMemory is
//     recoverable, MisuseError means a protocol violation
//   - Extent memory is untyped, so the collector does not scan it: a
//     value stored in an extent must not hold the only reference to a
//     Go-heap object
package alloc
