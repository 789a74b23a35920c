package alloc

// Dropper is implemented by values that need a destructor run in place
// before their backing memory is reclaimed. When a value whose pointer
// type implements Dropper is allocated through a *Scoped, its Drop is
// queued on that instance and runs (newest first) on scope rollback or
// root Close, so destruction always precedes deallocation, including
// when a scope closure panics.
type Dropper interface {
	Drop()
}

// Allocated wraps exclusive access to a T living in allocator-owned
// memory. The handle must not outlive the extent that backs it; in
// particular, handles created inside a Scope closure are invalid after
// the closure returns.
type Allocated[T any] struct {
	value    *T
	block    Block
	released bool
}

// Get returns the value in place for reading and writing.
func (h *Allocated[T]) Get() *T { return h.value }

// Block returns the raw block backing the value.
func (h *Allocated[T]) Block() Block { return h.block }

// Release runs the value's Drop in place if it implements Dropper.
// It never frees the backing bytes; reclamation is the allocator's job,
// typically via scope rollback. Release is idempotent, so a handle both
// released by hand and queued on a Scoped instance drops exactly once.
func (h *Allocated[T]) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	if d, ok := any(h.value).(Dropper); ok {
		d.Drop()
	}
}

func newAllocated[T any](a Allocator, p *T, blk Block) *Allocated[T] {
	h := &Allocated[T]{value: p, block: blk}
	if _, ok := any(p).(Dropper); ok {
		if s, isScoped := a.(*Scoped); isScoped {
			s.deferDrop(h.Release)
		}
	}
	return h
}
