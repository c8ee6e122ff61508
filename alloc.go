package arena

import (
	"unsafe"

	"github.com/fagongzi/util/hack"
)

// Alloc returns a pointer to a zeroed T stored inside the allocator.
// The pointer is valid until the arena is rewound past it.
//
// Arena memory is invisible to the garbage collector: T must not contain
// Go pointers (pointers, slices, strings, maps, chans, funcs or interfaces)
// that are the only reference to heap objects.
func Alloc[T any](a Allocator) (*T, error) {
	l := LayoutOf[T]()
	if l.Size == 0 {
		return new(T), nil
	}
	b, err := a.AllocateZeroed(l)
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// AllocUninitialized returns a *T located in the allocator without zeroing
// memory. The contents are undefined; initialize before reading.
// T must not contain Go pointers.
func AllocUninitialized[T any](a Allocator) (*T, error) {
	l := LayoutOf[T]()
	if l.Size == 0 {
		return new(T), nil
	}
	b, err := a.Allocate(l)
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// AllocSlice allocates n elements of T inside the allocator.
// The elements are not initialized. Returns nil if n <= 0.
// T must not contain Go pointers.
func AllocSlice[T any](a Allocator, n int) ([]T, error) {
	return allocSlice[T](a, n, false)
}

// AllocSliceZeroed allocates n zeroed elements of T.
// T must not contain Go pointers.
func AllocSliceZeroed[T any](a Allocator, n int) ([]T, error) {
	return allocSlice[T](a, n, true)
}

func allocSlice[T any](a Allocator, n int, zero bool) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	l := ArrayLayout[T](n)
	if l.Size == 0 {
		return make([]T, n), nil
	}
	var (
		b   []byte
		err error
	)
	if zero {
		b, err = a.AllocateZeroed(l)
	} else {
		b, err = a.Allocate(l)
	}
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// CopyBytes copies src into the allocator.
func CopyBytes(a Allocator, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	b, err := a.Allocate(Layout{Size: len(src), Align: 1})
	if err != nil {
		return nil, err
	}
	copy(b, src)
	return b, nil
}

// CopyString copies s into the allocator and returns a string backed by
// arena memory. The string must not be used after the arena is rewound
// past it.
func CopyString(a Allocator, s string) (string, error) {
	if s == "" {
		return "", nil
	}
	b, err := CopyBytes(a, hack.StringToSlice(s))
	if err != nil {
		return "", err
	}
	return hack.SliceToString(b), nil
}
