package alloc

import "testing"

// BenchmarkScoped100MB exercises the mixed small/medium/large pattern of
// a full 100MB extent: 10k 16-byte, 1k 256-byte and 50 2MB allocations
// per iteration, then O(1) teardown.
func BenchmarkScoped100MB(b *testing.B) {
	for i := 0; i < b.N; i++ {
		a, err := New(105 << 20)
		if err != nil {
			b.Fatal(err)
		}
		for j := 0; j < 10000; j++ {
			if _, err := a.AllocateRaw(16, 1); err != nil {
				b.Fatal(err)
			}
		}
		for j := 0; j < 1000; j++ {
			if _, err := a.AllocateRaw(256, 1); err != nil {
				b.Fatal(err)
			}
		}
		for j := 0; j < 50; j++ {
			if _, err := a.AllocateRaw(1<<21, 1); err != nil {
				b.Fatal(err)
			}
		}
		if err := a.Close(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkScopeEnterExit measures the fixed cost of the scope protocol
// itself: suspend, child construction, rollback.
func BenchmarkScopeEnterExit(b *testing.B) {
	a, err := New(1 << 16)
	if err != nil {
		b.Fatal(err)
	}
	defer a.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := a.Scope(func(inner *Scoped) error {
			_, err := inner.AllocateRaw(64, 8)
			return err
		}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAllocateRaw(b *testing.B) {
	a, err := New(1 << 20)
	if err != nil {
		b.Fatal(err)
	}
	defer a.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blk, err := a.AllocateRaw(64, 8)
		if err != nil {
			b.Fatal(err)
		}
		// LIFO free keeps the extent from filling up.
		a.DeallocateRaw(blk)
	}
}

func BenchmarkScopedVsBuiltin(b *testing.B) {
	b.Run("scoped", func(b *testing.B) {
		a, err := New(1 << 20)
		if err != nil {
			b.Fatal(err)
		}
		defer a.Close()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := a.Scope(func(inner *Scoped) error {
				for j := 0; j < 100; j++ {
					if _, err := inner.AllocateRaw(64, 8); err != nil {
						return err
					}
				}
				return nil
			}); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("builtin", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				_ = make([]byte, 64)
			}
		}
	})
}
