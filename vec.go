package arena

import (
	"fmt"
	"unsafe"
)

// Vec is a growable slice of T whose storage comes from an Allocator.
// T must not contain Go pointers.
type Vec[T any] struct {
	alloc Allocator
	items []T // len(items) is the allocated capacity
	n     int
}

// NewVec creates a vector with room for capacity elements.
func NewVec[T any](alloc Allocator, capacity int) (*Vec[T], error) {
	v := &Vec[T]{alloc: alloc}
	if capacity > 0 {
		if err := v.resize(capacity); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Push appends x.
func (v *Vec[T]) Push(x T) error {
	if v.n == len(v.items) {
		if err := v.resize(max(4, 2*len(v.items))); err != nil {
			return err
		}
	}
	v.items[v.n] = x
	v.n++
	return nil
}

// At returns the i-th element.
func (v *Vec[T]) At(i int) T {
	v.checkIndex(i)
	return v.items[i]
}

// Set replaces the i-th element.
func (v *Vec[T]) Set(i int, x T) {
	v.checkIndex(i)
	v.items[i] = x
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int {
	return v.n
}

// Cap returns the number of elements that fit without growing.
func (v *Vec[T]) Cap() int {
	return len(v.items)
}

// Slice returns the elements. It aliases arena memory.
func (v *Vec[T]) Slice() []T {
	return v.items[:v.n:v.n]
}

// Truncate keeps the first n elements.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 || n > v.n {
		panic(fmt.Sprintf("arena: truncate %d out of range [0, %d]", n, v.n))
	}
	v.n = n
}

// ShrinkToFit releases the unused capacity back to the allocator where it
// can take it.
func (v *Vec[T]) ShrinkToFit() error {
	if v.n == len(v.items) {
		return nil
	}
	from, to := ArrayLayout[T](len(v.items)), ArrayLayout[T](v.n)
	if from.Size == 0 {
		v.items = v.items[:v.n:v.n]
		return nil
	}
	b, err := v.alloc.Shrink(v.bytes(), from, to)
	if err != nil {
		return err
	}
	v.setBytes(b, v.n)
	return nil
}

// Close hands the storage back to the allocator.
func (v *Vec[T]) Close() {
	v.alloc.Deallocate(v.bytes(), ArrayLayout[T](len(v.items)))
	v.items = nil
	v.n = 0
}

func (v *Vec[T]) resize(capacity int) error {
	from, to := ArrayLayout[T](len(v.items)), ArrayLayout[T](capacity)
	if to.Size == 0 {
		v.items = make([]T, capacity)
		return nil
	}
	b, err := v.alloc.Grow(v.bytes(), from, to)
	if err != nil {
		return err
	}
	v.setBytes(b, capacity)
	return nil
}

func (v *Vec[T]) bytes() []byte {
	size := int(unsafe.Sizeof(*new(T)))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v.items))), len(v.items)*size)
}

func (v *Vec[T]) setBytes(b []byte, n int) {
	if n == 0 {
		v.items = nil
		return
	}
	v.items = unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

func (v *Vec[T]) checkIndex(i int) {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("arena: index %d out of range [0, %d)", i, v.n))
	}
}
