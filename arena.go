package arena

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
)

// Arena is a bump allocator over one contiguous region of fixed capacity.
// Allocation advances a single watermark; memory is only reclaimed in bulk
// by rewinding it. Not goroutine-safe.
type Arena struct {
	buf      []byte // backing memory, exactly as returned by the reserver
	offset   int    // watermark
	peak     int    // highest watermark seen
	failures uint64 // allocations rejected for lack of space
	reserver Reserver
	released bool
}

// New reserves an arena of exactly capacity bytes.
// The returned error wraps ErrOutOfMemory if the memory cannot be reserved.
func New(capacity int, opts ...Option) (*Arena, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: negative capacity %d", ErrOutOfMemory, capacity)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.adjust()

	buf, err := o.reserver.Reserve(capacity)
	if err != nil {
		logger.Debug("arena reservation failed",
			zap.Int("capacity", capacity),
			zap.Error(err))
		return nil, err
	}
	if len(buf) != capacity {
		_ = o.reserver.Release(buf)
		return nil, fmt.Errorf("%w: reserved %d bytes, want %d", ErrOutOfMemory, len(buf), capacity)
	}
	logger.Debug("arena reserved", zap.Int("capacity", capacity))
	return &Arena{buf: buf, reserver: o.reserver}, nil
}

// Empty returns a zero-capacity arena. Only zero-size allocations succeed.
func Empty() *Arena {
	return &Arena{reserver: HeapReserver{}}
}

// Offset returns the current watermark.
func (a *Arena) Offset() int {
	a.panicIfReleased()
	return a.offset
}

// AllocRaw reserves size bytes aligned to align, which must be a power of
// two. The returned slice has length and capacity size and is not zeroed.
// If the arena cannot fit the request it returns an *AllocError and the
// watermark is left untouched.
func (a *Arena) AllocRaw(size, align int) ([]byte, error) {
	checkLayout(size, align)
	a.panicIfReleased()

	start, ok := a.fit(a.offset, size, align)
	if !ok {
		return nil, a.fail(size, align)
	}
	end := start + size
	a.bump(end)
	return a.buf[start:end:end], nil
}

// Reset rewinds the watermark to to. It is unchecked: every slice handed
// out past to becomes garbage that the next allocation will overwrite.
// Reset panics if to lies outside [0, Capacity()].
func (a *Arena) Reset(to int) {
	a.panicIfReleased()
	if to < 0 || to > len(a.buf) {
		panic(fmt.Sprintf("arena: reset to %d outside capacity %d", to, len(a.buf)))
	}
	a.offset = to
}

// Clear rewinds the arena to empty.
func (a *Arena) Clear() {
	a.Reset(0)
}

// Release returns the backing memory to its reserver and makes the arena
// unusable. Any subsequent operation panics. Releasing twice is a no-op.
func (a *Arena) Release() error {
	if a.released {
		return nil
	}
	err := a.reserver.Release(a.buf)
	logger.Debug("arena released",
		zap.Int("capacity", len(a.buf)),
		zap.Int("peak", a.peak),
		zap.Error(err))
	a.buf = nil
	a.offset = 0
	a.released = true
	return err
}

// fit returns the offset at which size bytes aligned to align would start
// if allocated at or after from, and whether they fit in the arena.
func (a *Arena) fit(from, size, align int) (int, bool) {
	base := a.base()
	start := int(alignUp(base+uintptr(from), uintptr(align)) - base)
	if start > len(a.buf) || size > len(a.buf)-start {
		return 0, false
	}
	return start, true
}

func (a *Arena) bump(end int) {
	a.offset = end
	if end > a.peak {
		a.peak = end
	}
}

func (a *Arena) fail(size, align int) error {
	a.failures++
	if ce := logger.Check(zap.DebugLevel, "arena out of memory"); ce != nil {
		ce.Write(zap.Int("size", size),
			zap.Int("align", align),
			zap.Int("offset", a.offset),
			zap.Int("capacity", len(a.buf)))
	}
	return &AllocError{Size: size, Align: align, Offset: a.offset, Capacity: len(a.buf)}
}

func (a *Arena) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
}

// offsetOf locates b inside the arena.
func (a *Arena) offsetOf(b []byte) (int, bool) {
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	base := a.base()
	if p == 0 || p < base || p >= base+uintptr(len(a.buf)) {
		return 0, false
	}
	return int(p - base), true
}

// tail reports where b starts if it is the most recent allocation of the
// given layout, i.e. its end coincides with the watermark.
func (a *Arena) tail(b []byte, l Layout) (int, bool) {
	if l.Size == 0 {
		return 0, false
	}
	start, ok := a.offsetOf(b)
	if !ok || start+l.Size != a.offset {
		return 0, false
	}
	return start, true
}

func (a *Arena) aligned(start, align int) bool {
	return (a.base()+uintptr(start))&uintptr(align-1) == 0
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.released {
		panic("arena: use after Release()")
	}
}
