package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is reported by every allocating operation that would
	// move the watermark past the arena capacity, and by failed reservations.
	ErrOutOfMemory = errors.New("arena: out of memory")
	// ErrBorrowed is the panic cause when a scratch arena is used or
	// released while a more recent borrow of the same arena is alive.
	ErrBorrowed = errors.New("arena: already borrowed by a newer scratch arena")
	// ErrAlreadyInitialized is returned by Init when the default scratch
	// pool exists already.
	ErrAlreadyInitialized = errors.New("arena: scratch arenas already initialized")
)

// AllocError describes an allocation request the arena could not satisfy.
type AllocError struct {
	Size     int // requested bytes
	Align    int // requested alignment
	Offset   int // watermark at the time of the request
	Capacity int // arena capacity
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("arena: out of memory: size %d align %d at offset %d exceeds capacity %d",
		e.Size, e.Align, e.Offset, e.Capacity)
}

// Is reports ErrOutOfMemory as the cause.
func (e *AllocError) Is(target error) bool {
	return target == ErrOutOfMemory
}

// BorrowError is the value a stale or out of order scratch arena panics with.
type BorrowError struct {
	ID      ID
	Borrow  int    // generation held by the stale handle
	Current int    // generation currently registered for the arena
	Op      string // operation that tripped the check
}

func (e *BorrowError) Error() string {
	return fmt.Sprintf("%s: %s on arena %d with borrow %d, current borrow %d",
		ErrBorrowed, e.Op, e.ID, e.Borrow, e.Current)
}

// Is reports ErrBorrowed as the cause.
func (e *BorrowError) Is(target error) bool {
	return target == ErrBorrowed
}
