//go:build !unix

package arena

// MmapReserver falls back to the Go heap on platforms without mmap.
type MmapReserver struct {
	HeapReserver
}
