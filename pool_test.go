package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestPool(t *testing.T) {
	p := NewPool()
	assert.Equal(t, 0, p.Len())

	id0, err := p.New(64)
	require.NoError(t, err)
	a := Empty()
	id1 := p.Add(a)

	assert.Equal(t, ID(0), id0)
	assert.Equal(t, ID(1), id1)
	assert.Equal(t, 2, p.Len())
	assert.Same(t, a, p.Arena(id1))
	assert.Equal(t, 64, p.Arena(id0).Capacity())
	assert.Equal(t, 0, p.Generation(id0))

	_, err = p.New(-1)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 2, p.Len())

	assert.Panics(t, func() { p.Arena(2) })
	assert.Panics(t, func() { p.Generation(-1) })
	assert.Panics(t, func() { p.Add(nil) })

	require.NoError(t, p.Close())
	assert.Panics(t, func() { p.Arena(id0).Offset() })
}

func TestPoolCloseWithLiveBorrows(t *testing.T) {
	p := NewPool()
	id0, err := p.New(64)
	require.NoError(t, err)
	id1, err := p.New(64)
	require.NoError(t, err)
	id2, err := p.New(64)
	require.NoError(t, err)

	s0 := Borrow(p, id0)
	s2 := Borrow(p, id2)

	err = p.Close()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Panics(t, func() { p.Arena(id1).Offset() }, "arenas without borrows are released")

	s0.Release()
	s2.Release()
	assert.NoError(t, p.Close())
}
