package arena

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ID addresses an arena inside a Pool.
type ID int

type slot struct {
	arena   *Arena
	borrows int // generation of the newest live borrow, 0 if none
}

// Pool owns a set of arenas addressed by ID and tracks the borrow
// generation of each. Scratch borrows refer to their arena through the
// pool and an ID, so a borrow never outlives the memory it points into
// as long as the pool is not closed underneath it.
type Pool struct {
	slots []slot
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Add takes ownership of a and returns its ID.
func (p *Pool) Add(a *Arena) ID {
	if a == nil {
		panic("arena: nil arena added to pool")
	}
	p.slots = append(p.slots, slot{arena: a})
	return ID(len(p.slots) - 1)
}

// New reserves an arena of the given capacity and adds it to the pool.
func (p *Pool) New(capacity int, opts ...Option) (ID, error) {
	a, err := New(capacity, opts...)
	if err != nil {
		return -1, err
	}
	return p.Add(a), nil
}

// Arena returns the arena registered under id without any borrow check.
func (p *Pool) Arena(id ID) *Arena {
	return p.slot(id).arena
}

// Generation returns the borrow generation currently registered for id.
// It equals the number of live scratch borrows of that arena.
func (p *Pool) Generation(id ID) int {
	return p.slot(id).borrows
}

// Len returns the number of arenas in the pool.
func (p *Pool) Len() int {
	return len(p.slots)
}

// Close releases every arena in the pool. Arenas that still have live
// borrows are left alone and reported in the returned error.
func (p *Pool) Close() error {
	var err error
	for i := range p.slots {
		s := &p.slots[i]
		if s.borrows != 0 {
			logger.Error("closing pool with live scratch borrows",
				zap.Int("arena", i),
				zap.Int("borrows", s.borrows))
			err = multierr.Append(err, fmt.Errorf("arena: arena %d has %d live borrows", i, s.borrows))
			continue
		}
		err = multierr.Append(err, s.arena.Release())
	}
	return err
}

func (p *Pool) slot(id ID) *slot {
	if id < 0 || int(id) >= len(p.slots) {
		panic(fmt.Sprintf("arena: unknown arena id %d", id))
	}
	return &p.slots[id]
}
