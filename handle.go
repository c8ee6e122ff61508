package arena

import (
	"go.uber.org/zap"
)

// Handle is the checked view of an arena.
//
// An owned handle wraps an arena it exclusively owns and passes every call
// straight through. A delegated handle refers to an arena in a Pool and
// carries the borrow generation it was issued with: it is only valid while
// no newer borrow of the same arena exists. Using a stale delegated handle
// panics with a *BorrowError instead of silently handing out memory a newer
// scope considers free.
//
// The zero value is not usable.
type Handle struct {
	arena *Arena // owned

	pool   *Pool // delegated
	id     ID
	borrow int

	released bool
}

// Own wraps a in an owned handle.
func Own(a *Arena) *Handle {
	return &Handle{arena: a}
}

// NewOwned reserves a new arena and wraps it in an owned handle.
func NewOwned(capacity int, opts ...Option) (*Handle, error) {
	a, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return Own(a), nil
}

// delegate issues the next borrow generation of the pooled arena id.
func delegate(p *Pool, id ID) Handle {
	s := p.slot(id)
	s.borrows++
	return Handle{pool: p, id: id, borrow: s.borrows}
}

// Delegated reports whether h borrows an arena from a pool.
func (h *Handle) Delegated() bool {
	return h.pool != nil
}

// Generation returns the borrow generation of a delegated handle, 0 for an
// owned one.
func (h *Handle) Generation() int {
	return h.borrow
}

// Arena returns the underlying arena. For a delegated handle the returned
// arena must not be used once a newer borrow exists.
func (h *Handle) Arena() *Arena {
	return h.target("arena")
}

// Offset returns the watermark of the underlying arena.
func (h *Handle) Offset() int {
	return h.target("offset").Offset()
}

// Remaining returns the free bytes of the underlying arena.
func (h *Handle) Remaining() int {
	return h.target("remaining").Remaining()
}

// AllocRaw allocates through the underlying arena.
func (h *Handle) AllocRaw(size, align int) ([]byte, error) {
	return h.target("alloc").AllocRaw(size, align)
}

// Reset rewinds the underlying arena. Like Arena.Reset it is unchecked
// with respect to outstanding slices; only the handle itself is checked.
func (h *Handle) Reset(to int) {
	h.target("reset").Reset(to)
}

// Allocate implements Allocator.
func (h *Handle) Allocate(l Layout) ([]byte, error) {
	return h.target("allocate").Allocate(l)
}

// AllocateZeroed implements Allocator.
func (h *Handle) AllocateZeroed(l Layout) ([]byte, error) {
	return h.target("allocate").AllocateZeroed(l)
}

// Deallocate implements Allocator. It is a no-op and performs no check.
func (h *Handle) Deallocate([]byte, Layout) {}

// Grow implements Allocator.
func (h *Handle) Grow(b []byte, from, to Layout) ([]byte, error) {
	return h.target("grow").Grow(b, from, to)
}

// GrowZeroed implements Allocator.
func (h *Handle) GrowZeroed(b []byte, from, to Layout) ([]byte, error) {
	return h.target("grow").GrowZeroed(b, from, to)
}

// Shrink implements Allocator.
func (h *Handle) Shrink(b []byte, from, to Layout) ([]byte, error) {
	return h.target("shrink").Shrink(b, from, to)
}

// Release ends the handle. An owned handle releases its arena. A delegated
// handle checks it is still the newest borrow and gives its generation back;
// releasing out of order panics with a *BorrowError.
func (h *Handle) Release() error {
	if h.pool != nil {
		h.unborrow()
		return nil
	}
	a := h.targetUnchecked()
	h.released = true
	return a.Release()
}

// unborrow ends a delegated handle. It cannot fail: the only error is a
// borrow violation, which panics.
func (h *Handle) unborrow() {
	h.targetUnchecked()
	s := h.pool.slot(h.id)
	if checksEnabled && h.borrow != s.borrows {
		h.violation("release", s.borrows)
	}
	s.borrows--
	h.released = true
}

// target returns the arena to operate on, asserting a delegated handle is
// the newest borrow of its arena.
func (h *Handle) target(op string) *Arena {
	if h.released {
		panic("arena: use after Release()")
	}
	if h.pool == nil {
		return h.arena
	}
	s := h.pool.slot(h.id)
	if checksEnabled && h.borrow != s.borrows {
		h.violation(op, s.borrows)
	}
	return s.arena
}

// targetUnchecked skips the generation check. Only the release path uses
// it, and it performs the check itself.
func (h *Handle) targetUnchecked() *Arena {
	if h.released {
		panic("arena: use after Release()")
	}
	if h.pool == nil {
		return h.arena
	}
	return h.pool.slot(h.id).arena
}

func (h *Handle) violation(op string, current int) {
	err := &BorrowError{ID: h.id, Borrow: h.borrow, Current: current, Op: op}
	logger.Error("scratch arena used out of order",
		zap.Int("arena", int(h.id)),
		zap.Int("borrow", h.borrow),
		zap.Int("current", current),
		zap.String("op", op))
	panic(err)
}
