package alloc

import "testing"

func BenchmarkAllocFree(b *testing.B) {
	al := newTestAllocator(b, DefaultConfig)
	b.ReportAllocs()
	for b.Loop() {
		p, err := al.Alloc(64)
		if err != nil {
			b.Fatal(err)
		}
		al.Free(p)
	}
}

// BenchmarkAllocFragmented measures first fit behind a run of busy blocks
// interleaved with holes too small for the request.
func BenchmarkAllocFragmented(b *testing.B) {
	al := newTestAllocator(b, DefaultConfig)
	var holes []Ptr
	for range 256 {
		holes = append(holes, mustAlloc(b, al, 16))
		mustAlloc(b, al, 16)
	}
	for _, p := range holes {
		al.Free(p)
	}

	b.ReportAllocs()
	for b.Loop() {
		p, err := al.Alloc(256)
		if err != nil {
			b.Fatal(err)
		}
		al.Free(p)
	}
}

func BenchmarkReallocGrow(b *testing.B) {
	al := newTestAllocator(b, DefaultConfig)
	b.ReportAllocs()
	for b.Loop() {
		p := mustAlloc(b, al, 16)
		for n := 32; n <= 4096; n *= 2 {
			var err error
			if p, err = al.Realloc(p, n); err != nil {
				b.Fatal(err)
			}
		}
		al.Free(p)
	}
}
