package arena

// Reserver hands out the contiguous region an Arena bumps through.
// Reserve must return a slice of exactly capacity bytes; the arena passes
// that same slice back to Release once it is done with it.
type Reserver interface {
	Reserve(capacity int) ([]byte, error)
	Release(buf []byte) error
}

// HeapReserver reserves arena memory on the Go heap.
type HeapReserver struct{}

// Reserve allocates a zeroed byte slice of the given capacity.
func (HeapReserver) Reserve(capacity int) ([]byte, error) {
	if capacity == 0 {
		return nil, nil
	}
	return make([]byte, capacity), nil
}

// Release leaves buf to the garbage collector.
func (HeapReserver) Release([]byte) error {
	return nil
}

// Option configures a new Arena.
type Option func(*options)

type options struct {
	reserver Reserver
}

func (o *options) adjust() {
	if o.reserver == nil {
		o.reserver = HeapReserver{}
	}
}

// WithReserver sets where the arena takes its memory from.
func WithReserver(r Reserver) Option {
	return func(o *options) {
		o.reserver = r
	}
}

// WithMmap reserves the arena as anonymous virtual memory where the
// platform supports it. Pages are committed by the OS on first touch.
func WithMmap() Option {
	return WithReserver(MmapReserver{})
}
