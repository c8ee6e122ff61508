//go:build unix

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapReserver(t *testing.T) {
	var r MmapReserver
	buf, err := r.Reserve(1 << 16)
	require.NoError(t, err)
	require.Len(t, buf, 1<<16)
	assert.Equal(t, make([]byte, 1<<16), buf, "fresh mappings are zeroed")
	buf[0], buf[len(buf)-1] = 1, 2
	assert.NoError(t, r.Release(buf))

	empty, err := r.Reserve(0)
	assert.NoError(t, err)
	assert.Nil(t, empty)
	assert.NoError(t, r.Release(empty))
}

func TestNewWithMmap(t *testing.T) {
	a, err := New(4096, WithMmap())
	require.NoError(t, err)
	assert.Zero(t, a.base()%4096, "mappings start on a page boundary")

	b, err := a.AllocRaw(64, 64)
	require.NoError(t, err)
	assert.Equal(t, a.base(), addr(b))
	require.NoError(t, a.Release())
	assert.NoError(t, a.Release())
}
