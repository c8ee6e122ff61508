//go:build unix

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapReserver reserves arena memory with an anonymous private mapping.
// The mapping lives outside the Go heap, so values stored in it must not
// hold Go pointers.
type MmapReserver struct{}

// Reserve maps capacity bytes of zeroed, readable and writable memory.
func (MmapReserver) Reserve(capacity int) ([]byte, error) {
	if capacity == 0 {
		return nil, nil
	}
	buf, err := unix.Mmap(-1, 0, capacity, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot mmap %d bytes: %v", ErrOutOfMemory, capacity, err)
	}
	return buf, nil
}

// Release unmaps a region returned by Reserve.
func (MmapReserver) Release(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return unix.Munmap(buf)
}
