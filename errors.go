package alloc

import "errors"

// MisuseError reports a protocol violation: an operation that is never
// valid in the allocator's current state, as opposed to a capacity
// failure the caller can recover from by allocating elsewhere.
type MisuseError struct {
	Msg string
}

func (e *MisuseError) Error() string { return "alloc: " + e.Msg }

var (
	// ErrOutOfMemory indicates the aligned request exceeds the remaining
	// capacity of the extent. Recoverable: the allocator state is
	// unchanged and the caller still holds the value it tried to store.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrSuspended indicates an allocation or scope attempt on an
	// allocator whose extent is currently owned by a live child scope.
	ErrSuspended error = &MisuseError{Msg: "allocator is suspended by a live scope"}

	// ErrClosed indicates use of an allocator after Close.
	ErrClosed error = &MisuseError{Msg: "use of closed allocator"}

	// ErrBadAlign indicates a requested alignment that is not a power of two.
	ErrBadAlign error = &MisuseError{Msg: "alignment must be a power of two"}
)
