package alloc

import "unsafe"

// extentAlign is the alignment every extent is requested with, enough
// for any primitive type.
const extentAlign = unsafe.Alignof(uintptr(0))

// Scoped is a bump allocator over a fixed extent obtained from a parent
// Allocator. Allocation advances a single cursor; individual frees are
// (at best) a LIFO fast path; real reclamation happens in bulk when a
// scope rolls back or the root is closed.
//
// Scope pushes a nested allocation lifetime: the parent is suspended for
// the duration of the closure, the closure allocates through a transient
// child sharing the same extent, and on exit the parent's cursor is
// restored, discarding everything the child allocated in O(1).
//
// A Scoped instance must stay on one goroutine. The suspension sentinel
// is a protocol check for a single thread of control, not a lock.
type Scoped struct {
	parent Allocator
	extent Block

	// start..end bound this instance's slice of the extent. For a root
	// they cover the whole extent; for a scope child, start is the
	// parent's cursor at scope entry.
	start uintptr
	end   uintptr

	// cur is the bump cursor, start <= cur <= end while active.
	// cur == 0 is the suspension sentinel: a live child scope owns
	// allocation rights and any allocation here fails with ErrSuspended.
	cur   uintptr
	saved uintptr

	// root marks the instance that owns the extent and must return it to
	// the parent on Close. Scope children are never root; the scope
	// protocol defuses them instead of closing them.
	root   bool
	closed bool

	// drops holds pending value finalizers in allocation order. They run
	// in reverse before any memory is reclaimed, on every exit path.
	drops []func()
}

// New creates a root Scoped allocator over size bytes from DefaultHeap.
func New(size uintptr) (*Scoped, error) {
	return NewFrom(DefaultHeap, size)
}

// NewFrom creates a root Scoped allocator backed by size bytes requested
// from the parent. A zero-size extent is legal: every allocation of
// non-zero size then fails with ErrOutOfMemory.
func NewFrom(parent Allocator, size uintptr) (*Scoped, error) {
	blk, err := parent.AllocateRaw(size, extentAlign)
	if err != nil {
		return nil, err
	}
	base := uintptr(blk.Ptr())
	return &Scoped{
		parent: parent,
		extent: blk,
		start:  base,
		end:    base + blk.Size(),
		cur:    base,
		root:   true,
	}, nil
}

// AllocateRaw bumps the cursor forward by size bytes at the requested
// alignment. On failure the cursor is unchanged.
func (s *Scoped) AllocateRaw(size, align uintptr) (Block, error) {
	if s.closed {
		return Block{}, ErrClosed
	}
	if s.cur == 0 {
		return Block{}, ErrSuspended
	}
	if !isPowerOfTwo(align) {
		return Block{}, ErrBadAlign
	}
	if size == 0 {
		return NewBlock(noStorage(), 0, align), nil
	}
	aligned := alignForward(s.cur, align)
	endOfBlock := aligned + size
	if aligned < s.cur || endOfBlock > s.end {
		return Block{}, ErrOutOfMemory
	}
	blk := NewBlock(s.addr(aligned), size, align)
	s.cur = endOfBlock
	return blk, nil
}

// DeallocateRaw reclaims the block immediately iff it is the most recent
// allocation (its end matches the cursor). Any other block is left as
// garbage until the enclosing scope rolls back; that silence is
// deliberate, the fast path keeps no bookkeeping to tell a stale free
// from a double free.
func (s *Scoped) DeallocateRaw(b Block) {
	if s.closed || s.cur == 0 {
		return
	}
	base := uintptr(b.Ptr())
	if base+b.Size() == s.cur {
		s.cur = base
	}
}

// Scope invokes f with a transient child allocator over the unused tail
// of the extent. While f runs this instance is suspended: allocating
// through it fails with ErrSuspended rather than silently corrupting the
// child's allocations. When f returns, panics, or errors, the child's
// pending finalizers run (newest first), the child is defused, and the
// cursor is restored to its value at entry, reclaiming every child
// allocation at once.
//
// At most one scope may be live per instance; scoping a suspended
// instance fails with ErrSuspended before f is invoked.
func (s *Scoped) Scope(f func(inner *Scoped) error) error {
	if s.closed {
		return ErrClosed
	}
	if s.cur == 0 {
		return ErrSuspended
	}
	saved := s.cur
	child := &Scoped{
		parent: s.parent,
		extent: s.extent,
		start:  saved,
		end:    s.end,
		cur:    saved,
	}
	s.saved = saved
	s.cur = 0
	defer func() {
		// Runs on panic unwinding too: destructors first, then the
		// rollback, and the child never returns the shared extent.
		child.runDrops()
		child.cur = 0
		child.closed = true
		s.saved = 0
		s.cur = saved
	}()
	return f(child)
}

// Suspended reports whether a child scope currently owns allocation
// rights over this instance's extent.
func (s *Scoped) Suspended() bool {
	return !s.closed && s.cur == 0
}

// OwnsBlock reports whether the block's address lies inside this
// instance's slice of the extent. The root answers for everything
// allocated from the extent, including by scope descendants; a child
// answers only for the tail it was given.
func (s *Scoped) OwnsBlock(b Block) bool {
	p := uintptr(b.Ptr())
	return p >= s.start && p <= s.end
}

// Close releases the allocator. Pending value finalizers run newest
// first, and only then, if this instance is the root of a non-empty
// extent, is the extent returned to the parent. Closing is idempotent;
// closing while a scope is live is a misuse error.
func (s *Scoped) Close() error {
	if s.closed {
		return nil
	}
	if s.cur == 0 {
		return ErrSuspended
	}
	s.runDrops()
	if s.root && s.end > s.start {
		s.parent.DeallocateRaw(s.extent)
	}
	s.closed = true
	return nil
}

// deferDrop queues a finalizer to run before this instance's memory is
// reclaimed.
func (s *Scoped) deferDrop(fn func()) {
	s.drops = append(s.drops, fn)
}

func (s *Scoped) runDrops() {
	for i := len(s.drops) - 1; i >= 0; i-- {
		s.drops[i]()
	}
	s.drops = nil
}

// addr converts an absolute cursor position back to a pointer derived
// from the extent's base, keeping the provenance the runtime expects.
func (s *Scoped) addr(abs uintptr) unsafe.Pointer {
	return unsafe.Add(s.extent.Ptr(), abs-uintptr(s.extent.Ptr()))
}

var (
	_ Allocator  = (*Scoped)(nil)
	_ BlockOwner = (*Scoped)(nil)
)
