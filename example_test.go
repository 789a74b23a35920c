package alloc

import (
	"fmt"
	"unsafe"
)

// Example demonstrates basic scoped allocator usage.
func Example() {
	// One extent from the Go heap; everything below lives inside it.
	a, err := New(1024)
	if err != nil {
		panic(err)
	}
	defer a.Close()

	// Typed allocation.
	h, _ := Alloc(a, int64(42))
	fmt.Printf("allocated: %d\n", *h.Get())

	// A scratch slice inside the extent.
	buf, _ := AllocSlice[byte](a, 100)
	fmt.Printf("scratch bytes: %d\n", len(buf))

	fmt.Printf("in use: %d bytes\n", a.SizeInUse())
	fmt.Printf("utilization: %.2f%%\n", a.Utilization()*100)

	// Output:
	// allocated: 42
	// scratch bytes: 100
	// in use: 108 bytes
	// utilization: 10.55%
}

// ExampleScoped_Scope demonstrates nested scopes: scope-local
// allocations are reclaimed in O(1) on exit, and the suspended parent
// rejects allocation while the scope is live.
func ExampleScoped_Scope() {
	a, err := New(64)
	if err != nil {
		panic(err)
	}
	defer a.Close()

	Alloc(a, uint32(7)) // survives the scope below

	a.Scope(func(inner *Scoped) error {
		for i := 0; i < 8; i++ {
			if _, err := Alloc(inner, uint32(i)); err != nil {
				return err
			}
		}
		fmt.Printf("scope in use: %d bytes\n", inner.SizeInUse())

		// The parent is suspended for the duration of the scope.
		if _, err := Alloc(a, uint32(9)); err != nil {
			fmt.Printf("parent while scoped: %v\n", err)
		}
		return nil
	})

	fmt.Printf("after scope: %d bytes\n", a.SizeInUse())

	// The scope's 32 bytes were reclaimed: the whole tail fits again.
	blk, err := a.AllocateRaw(60, 1)
	fmt.Printf("tail fits: %v (%d bytes)\n", err == nil, blk.Size())

	// Output:
	// scope in use: 32 bytes
	// parent while scoped: alloc: allocator is suspended by a live scope
	// after scope: 4 bytes
	// tail fits: true (60 bytes)
}

// tempFile shows a value with a destructor: Drop runs in place before
// the memory it lives in is reclaimed.
type tempFile struct {
	name string
}

func (t *tempFile) Drop() { fmt.Printf("closing %s\n", t.name) }

// ExampleDropper demonstrates destruction ordering: values allocated in
// a scope are dropped newest-first when the scope exits, before their
// memory is reused.
func ExampleDropper() {
	a, err := New(256)
	if err != nil {
		panic(err)
	}

	a.Scope(func(inner *Scoped) error {
		Alloc(inner, tempFile{name: "a.tmp"})
		Alloc(inner, tempFile{name: "b.tmp"})
		fmt.Println("scope done")
		return nil
	})

	a.Close()

	// Output:
	// scope done
	// closing b.tmp
	// closing a.tmp
}

// ExampleScoped_Metrics demonstrates monitoring extent usage.
func ExampleScoped_Metrics() {
	a, err := New(512)
	if err != nil {
		panic(err)
	}
	defer a.Close()

	AllocSlice[int64](a, 16)

	m := a.Metrics()
	fmt.Printf("in use: %d bytes\n", m.SizeInUse)
	fmt.Printf("capacity: %d bytes\n", m.Capacity)
	fmt.Printf("remaining: %d bytes\n", m.Remaining)
	fmt.Printf("utilization: %.1f%%\n", m.Utilization*100)

	// Output:
	// in use: 128 bytes
	// capacity: 512 bytes
	// remaining: 384 bytes
	// utilization: 25.0%
}

// ExampleAlloc_alignment demonstrates that allocations are aligned for
// their type.
func ExampleAlloc_alignment() {
	a, err := New(256)
	if err != nil {
		panic(err)
	}
	defer a.Close()

	p1, _ := Alloc(a, int8(1))
	p2, _ := Alloc(a, int64(2)) // 8-byte aligned
	p3, _ := Alloc(a, int32(3)) // 4-byte aligned

	fmt.Printf("int8 misalignment: %d\n", uintptr(unsafe.Pointer(p1.Get()))%8)
	fmt.Printf("int64 misalignment: %d\n", uintptr(unsafe.Pointer(p2.Get()))%8)
	fmt.Printf("int32 misalignment: %d\n", uintptr(unsafe.Pointer(p3.Get()))%4)

	// Output:
	// int8 misalignment: 0
	// int64 misalignment: 0
	// int32 misalignment: 0
}
