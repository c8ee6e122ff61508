package arena

import (
	"fmt"
)

// Example demonstrates basic arena usage
func Example() {
	a, err := New(1024)
	if err != nil {
		panic(err)
	}
	defer a.Release() // Always clean up

	ptr, _ := Alloc[int64](a)
	*ptr = 42
	fmt.Printf("Allocated int64 with value: %d\n", *ptr)

	slice, _ := AllocSlice[int64](a, 5)
	for i := range slice {
		slice[i] = int64(i * 2)
	}
	fmt.Printf("Allocated slice: %v\n", slice)

	fmt.Printf("Memory in use: %d bytes\n", a.SizeInUse())

	// Rewinding is O(1)
	a.Clear()
	fmt.Printf("After clear, memory in use: %d bytes\n", a.SizeInUse())

	// Output:
	// Allocated int64 with value: 42
	// Allocated slice: [0 2 4 6 8]
	// Memory in use: 48 bytes
	// After clear, memory in use: 0 bytes
}

// ExampleBorrow demonstrates a scratch scope nested inside longer lived
// allocations of the same arena
func ExampleBorrow() {
	p := NewPool()
	id, _ := p.New(64)
	defer p.Close()
	a := p.Arena(id)

	a.AllocRaw(10, 1)
	fmt.Printf("Before borrow: %d\n", a.Offset())

	func() {
		s := Borrow(p, id)
		defer s.Release()

		s.AllocRaw(20, 1)
		fmt.Printf("Inside borrow: %d (generation %d)\n", s.Offset(), s.Generation())
	}()

	fmt.Printf("After release: %d (generation %d)\n", a.Offset(), p.Generation(id))

	// Output:
	// Before borrow: 10
	// Inside borrow: 30 (generation 1)
	// After release: 10 (generation 0)
}

// ExampleScratchFor demonstrates building a result in one scratch arena
// while using the other for temporaries
func ExampleScratchFor() {
	out := Scratch(0)
	defer out.Release()

	words := []string{"bump", "arena", "scratch"}
	result, _ := NewBuffer(out, 32)
	for i, w := range words {
		tmp := ScratchFor(out)
		upper, _ := AllocSlice[byte](tmp, len(w))
		for j := range w {
			upper[j] = w[j] - 'a' + 'A'
		}
		if i > 0 {
			result.WriteByte(' ')
		}
		result.Write(upper)
		tmp.Release()
	}
	fmt.Println(result.String())

	// Output:
	// BUMP ARENA SCRATCH
}

// ExampleVec demonstrates a growable vector living in an arena
func ExampleVec() {
	a, _ := New(1024)
	defer a.Release()

	v, _ := NewVec[int32](a, 0)
	for i := int32(1); i <= 10; i++ {
		v.Push(i * i)
	}
	fmt.Printf("Values: %v\n", v.Slice())
	fmt.Printf("Capacity: %d\n", v.Cap())

	v.ShrinkToFit()
	fmt.Printf("Memory in use: %d bytes\n", a.SizeInUse())

	// Output:
	// Values: [1 4 9 16 25 36 49 64 81 100]
	// Capacity: 16
	// Memory in use: 40 bytes
}

// ExampleArena_Metrics demonstrates monitoring arena usage
func ExampleArena_Metrics() {
	a, _ := New(1000)
	defer a.Release()

	a.AllocRaw(100, 1)
	Alloc[int64](a)
	AllocSlice[int32](a, 50)
	a.AllocRaw(4096, 1)

	metrics := a.Metrics()
	fmt.Printf("Metrics:\n")
	fmt.Printf("  Size in use: %d bytes\n", metrics.SizeInUse)
	fmt.Printf("  Capacity: %d bytes\n", metrics.Capacity)
	fmt.Printf("  Failures: %d\n", metrics.Failures)
	fmt.Printf("  Utilization: %.1f%%\n", metrics.Utilization*100)

	// Output:
	// Metrics:
	//   Size in use: 312 bytes
	//   Capacity: 1000 bytes
	//   Failures: 1
	//   Utilization: 31.2%
}
