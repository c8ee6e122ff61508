package arena

import (
	"fmt"
	"unsafe"
)

// Allocator is the allocation capability growable containers are written
// against. Arena, Handle and ScratchArena all implement it, so any such
// container can be backed by an arena without modification.
//
// Every method taking a slice and a from Layout expects the slice to be a
// block previously returned by the same allocator with that layout.
type Allocator interface {
	// Allocate returns l.Size bytes aligned to l.Align with undefined contents.
	Allocate(l Layout) ([]byte, error)
	// AllocateZeroed is Allocate with the block zero-filled.
	AllocateZeroed(l Layout) ([]byte, error)
	// Deallocate gives a block back. It never fails and never panics.
	Deallocate(b []byte, l Layout)
	// Grow returns a block of layout to holding the contents of b.
	Grow(b []byte, from, to Layout) ([]byte, error)
	// GrowZeroed is Grow with the bytes past from.Size zero-filled.
	GrowZeroed(b []byte, from, to Layout) ([]byte, error)
	// Shrink returns a block of the smaller layout to holding the
	// leading to.Size bytes of b.
	Shrink(b []byte, from, to Layout) ([]byte, error)
}

var (
	_ Allocator = (*Arena)(nil)
	_ Allocator = (*Handle)(nil)
	_ Allocator = (*ScratchArena)(nil)
)

// Allocate implements Allocator.
func (a *Arena) Allocate(l Layout) ([]byte, error) {
	return a.AllocRaw(l.Size, l.Align)
}

// AllocateZeroed implements Allocator.
func (a *Arena) AllocateZeroed(l Layout) ([]byte, error) {
	b, err := a.AllocRaw(l.Size, l.Align)
	if err != nil {
		return nil, err
	}
	clear(b)
	return b, nil
}

// Deallocate is a no-op: arenas never free single objects, only Reset
// reclaims space. Containers may call it unconditionally on teardown.
func (a *Arena) Deallocate([]byte, Layout) {}

// Grow extends b to a larger layout. If b is the tail allocation it grows
// in place without copying; otherwise a fresh block is bump-allocated and
// the contents copied forward, leaving the old bytes as garbage.
func (a *Arena) Grow(b []byte, from, to Layout) ([]byte, error) {
	return a.grow(b, from, to, false)
}

// GrowZeroed is Grow with bytes [from.Size, to.Size) zero-filled.
func (a *Arena) GrowZeroed(b []byte, from, to Layout) ([]byte, error) {
	return a.grow(b, from, to, true)
}

func (a *Arena) grow(b []byte, from, to Layout, zero bool) ([]byte, error) {
	checkLayout(to.Size, to.Align)
	if to.Size < from.Size {
		panic(fmt.Sprintf("arena: grow from %v to smaller %v", from, to))
	}
	a.panicIfReleased()

	if start, ok := a.tail(b, from); ok && a.aligned(start, to.Align) {
		if to.Size > len(a.buf)-start {
			return nil, a.fail(to.Size-from.Size, to.Align)
		}
		end := start + to.Size
		a.bump(end)
		out := a.buf[start:end:end]
		if zero {
			clear(out[from.Size:])
		}
		return out, nil
	}

	out, err := a.AllocRaw(to.Size, to.Align)
	if err != nil {
		return nil, err
	}
	copy(out[:from.Size], b)
	if zero {
		clear(out[from.Size:])
	}
	return out, nil
}

// Shrink cuts b down to a smaller layout. Only the tail allocation gives
// space back to the arena; shrinking any other block succeeds without
// reclaiming anything.
func (a *Arena) Shrink(b []byte, from, to Layout) ([]byte, error) {
	checkLayout(to.Size, to.Align)
	if to.Size > from.Size {
		panic(fmt.Sprintf("arena: shrink from %v to larger %v", from, to))
	}
	a.panicIfReleased()

	if p := uintptr(unsafe.Pointer(unsafe.SliceData(b))); p&uintptr(to.Align-1) != 0 {
		out, err := a.AllocRaw(to.Size, to.Align)
		if err != nil {
			return nil, err
		}
		copy(out, b[:to.Size])
		return out, nil
	}
	if start, ok := a.tail(b, from); ok {
		a.offset = start + to.Size
	}
	return b[:to.Size:to.Size], nil
}
