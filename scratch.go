package arena

import (
	"go.uber.org/zap"
)

// ScratchArena is a scoped borrow of a pooled arena. It remembers the
// watermark at the time it was borrowed and rewinds the arena to it on
// Release, freeing everything allocated through it at once.
//
// Borrows of the same arena nest like a stack: a borrow taken after
// another must be released first, and the older one must not be used while
// the newer one is alive, since releasing the newer one rewinds over the
// older one's allocations. Both mistakes panic with a *BorrowError.
//
//	s := arena.Scratch(0)
//	defer s.Release()
type ScratchArena struct {
	h      Handle
	offset int
}

// Borrow starts a scratch scope on the arena id of p.
func Borrow(p *Pool, id ID) *ScratchArena {
	offset := p.Arena(id).Offset()
	return &ScratchArena{h: delegate(p, id), offset: offset}
}

// Release rewinds the arena to the watermark captured by Borrow and ends
// the borrow. It must run on every exit path; use defer.
func (s *ScratchArena) Release() {
	s.h.Reset(s.offset)
	s.h.unborrow()
}

// ID returns the pooled arena this scratch arena borrows.
func (s *ScratchArena) ID() ID {
	return s.h.id
}

// Generation returns the borrow generation of s.
func (s *ScratchArena) Generation() int {
	return s.h.Generation()
}

// Start returns the watermark the arena is rewound to on Release.
func (s *ScratchArena) Start() int {
	return s.offset
}

// Offset returns the watermark of the borrowed arena.
func (s *ScratchArena) Offset() int {
	return s.h.Offset()
}

// Remaining returns the free bytes of the borrowed arena.
func (s *ScratchArena) Remaining() int {
	return s.h.Remaining()
}

// AllocRaw allocates size bytes aligned to align.
func (s *ScratchArena) AllocRaw(size, align int) ([]byte, error) {
	return s.h.AllocRaw(size, align)
}

// Allocate implements Allocator.
func (s *ScratchArena) Allocate(l Layout) ([]byte, error) {
	return s.h.Allocate(l)
}

// AllocateZeroed implements Allocator.
func (s *ScratchArena) AllocateZeroed(l Layout) ([]byte, error) {
	return s.h.AllocateZeroed(l)
}

// Deallocate implements Allocator. It is a no-op.
func (s *ScratchArena) Deallocate(b []byte, l Layout) {
	s.h.Deallocate(b, l)
}

// Grow implements Allocator.
func (s *ScratchArena) Grow(b []byte, from, to Layout) ([]byte, error) {
	return s.h.Grow(b, from, to)
}

// GrowZeroed implements Allocator.
func (s *ScratchArena) GrowZeroed(b []byte, from, to Layout) ([]byte, error) {
	return s.h.GrowZeroed(b, from, to)
}

// Shrink implements Allocator.
func (s *ScratchArena) Shrink(b []byte, from, to Layout) ([]byte, error) {
	return s.h.Shrink(b, from, to)
}

// DefaultScratchCapacity is the capacity of each default scratch arena when
// they are created lazily. Mapped memory is committed on first touch, so
// the reservation is cheap.
const DefaultScratchCapacity = 64 << 20

// scratch holds the process-wide scratch arenas. Two are kept so that a
// function writing its result into a caller's scratch arena can still take
// temporary space from the other one.
var scratch struct {
	pool *Pool
	ids  [2]ID
}

// Init creates the process-wide scratch arenas with the given capacity.
// Arenas are mapped with WithMmap unless opts pick another reserver.
func Init(capacity int, opts ...Option) error {
	if scratch.pool != nil {
		return ErrAlreadyInitialized
	}
	return initScratch(capacity, opts...)
}

func initScratch(capacity int, opts ...Option) error {
	p := NewPool()
	opts = append([]Option{WithMmap()}, opts...)
	var ids [2]ID
	for i := range ids {
		id, err := p.New(capacity, opts...)
		if err != nil {
			_ = p.Close()
			return err
		}
		ids[i] = id
	}
	scratch.pool = p
	scratch.ids = ids
	logger.Debug("scratch arenas initialized", zap.Int("capacity", capacity))
	return nil
}

// ensureScratch lazily creates the scratch arenas. If they cannot be
// reserved, empty arenas take their place so that allocations report
// ErrOutOfMemory rather than the process crashing.
func ensureScratch(hint int) {
	if scratch.pool != nil {
		return
	}
	capacity := max(DefaultScratchCapacity, hint)
	if err := initScratch(capacity); err != nil {
		logger.Error("cannot reserve scratch arenas, using empty ones",
			zap.Int("capacity", capacity),
			zap.Error(err))
		p := NewPool()
		scratch.ids = [2]ID{p.Add(Empty()), p.Add(Empty())}
		scratch.pool = p
	}
}

// DefaultPool returns the pool holding the process-wide scratch arenas.
func DefaultPool() *Pool {
	ensureScratch(0)
	return scratch.pool
}

// Scratch borrows the process-wide scratch arena. hint is the number of
// bytes the caller expects to need: it sizes the arenas if they do not
// exist yet, and a warning is logged if the arena has less space left.
func Scratch(hint int) *ScratchArena {
	ensureScratch(hint)
	s := Borrow(scratch.pool, scratch.ids[0])
	warnHint(s, hint)
	return s
}

// ScratchFor borrows a process-wide scratch arena other than the one backing
// conflict. A function that allocates its result into conflict can use it
// for temporaries without invalidating conflict. A nil conflict behaves
// like Scratch(0).
func ScratchFor(conflict *ScratchArena) *ScratchArena {
	ensureScratch(0)
	id := scratch.ids[0]
	if conflict != nil && conflict.h.pool == scratch.pool && conflict.h.id == id {
		id = scratch.ids[1]
	}
	return Borrow(scratch.pool, id)
}

func warnHint(s *ScratchArena, hint int) {
	if hint <= 0 {
		return
	}
	if remaining := s.Remaining(); remaining < hint {
		logger.Warn("scratch arena has less space than requested",
			zap.Int("hint", hint),
			zap.Int("remaining", remaining))
	}
}
