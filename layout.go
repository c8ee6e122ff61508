package arena

import (
	"fmt"
	"unsafe"
)

// Layout is the size and alignment of a block of memory.
type Layout struct {
	Size  int
	Align int
}

// LayoutOf returns the layout of a single T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{Size: int(unsafe.Sizeof(zero)), Align: int(unsafe.Alignof(zero))}
}

// ArrayLayout returns the layout of n consecutive values of T.
func ArrayLayout[T any](n int) Layout {
	l := LayoutOf[T]()
	if n < 0 || (l.Size > 0 && n > maxSize/l.Size) {
		panic(fmt.Sprintf("arena: invalid array length %d", n))
	}
	l.Size *= n
	return l
}

func (l Layout) String() string {
	return fmt.Sprintf("{size:%d align:%d}", l.Size, l.Align)
}

const maxSize = int(^uint(0) >> 1)

func checkLayout(size, align int) {
	if size < 0 {
		panic(fmt.Sprintf("arena: negative size %d", size))
	}
	if align <= 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", align))
	}
}

// alignUp rounds addr up to align, which must be a power of two.
func alignUp(addr, align uintptr) uintptr {
	mask := align - 1
	return (addr + mask) &^ mask
}
