// Package arena implements a bump allocator (memory arena) for Go together
// with scoped scratch borrows and a checked handle that catches scratch
// arenas used out of order.
//
// # Overview
//
// An Arena owns one contiguous region of fixed capacity and serves
// allocations by advancing a watermark. Individual objects are never freed;
// the watermark is rewound in bulk instead. This suits:
//
//   - Request- or frame-scoped temporaries
//   - Building intermediate results that are thrown away together
//   - Growable buffers whose final size is unknown up front
//
// # Basic Usage
//
//	a, err := arena.New(1 << 20)
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	buf, err := a.AllocRaw(1024, 8)
//	p, err := arena.Alloc[MyStruct](a)
//	s, err := arena.AllocSlice[int64](a, 100)
//
//	a.Reset(0)
//
// Running out of capacity is not fatal: every allocating call returns an
// error for which errors.Is(err, arena.ErrOutOfMemory) holds, and the
// watermark is left unchanged.
//
// # Scratch Arenas
//
// A ScratchArena borrows a pooled arena and rewinds it to where it was when
// the scope ends:
//
//	s := arena.Scratch(0)
//	defer s.Release()
//
//	tmp, err := arena.AllocSlice[uint32](s, 256)
//
// Scratch borrows of one arena form a stack. Once a newer borrow exists,
// an older one must not be used, and borrows must be released newest first.
// Both rules are checked on every access: breaking them panics with a
// *BorrowError (errors.Is(err, arena.ErrBorrowed)) naming the arena and
// generations involved. Building with -tags arena_release removes the
// check.
//
// ScratchFor hands out the other process-wide scratch arena, for functions
// that return their result in a caller's scratch arena but need temporary
// space of their own.
//
// # Allocator
//
// Arena, Handle and ScratchArena implement Allocator, the
// allocate/grow/shrink/deallocate capability that Buffer and Vec are
// written against. Growing the most recent allocation extends it in place;
// Deallocate is always a no-op.
//
// # Important Notes
//
//   - Allocated memory is only valid until the arena is rewound past it
//   - Arena memory is not scanned by the garbage collector: do not store
//     the only reference to a heap object in it
//   - Arenas are not goroutine-safe; give each goroutine its own
//   - Memory is not zeroed unless using the zeroed variants
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//
// NewCollector exports every arena of a Pool to Prometheus.
package arena
