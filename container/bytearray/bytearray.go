// Package bytearray implements the growable byte/char/unsigned-char array
// container family from the spec as one generic type, parameterized over
// the element type (byte, int8, or uint8 are the three isomorphic
// instantiations the spec names).
//
// Unlike the other containers in this module, Array talks to its
// allocator.Allocator directly via raw unsafe.Pointer arithmetic, matching
// the spec's explicit "Resize semantics" contract: growth uses
// ReallocateOrFail, and a failed growth leaves the container fully zeroed
// (buffer = nil, capacity = 0, length = 0).
package bytearray

import (
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/ros2/rcutils-go/allocator"
	"github.com/ros2/rcutils-go/rcerror"
)

// Element is the set of element types the spec's three isomorphic
// containers (byte_array, char_array, unsigned_char_array) instantiate.
// Bounded by constraints.Integer the way catrate/ring.go bounds its
// generic buffer element type by constraints.Ordered.
type Element interface {
	constraints.Integer
}

// Array is a growable, allocator-backed array of elements of type E.
type Array[E Element] struct {
	buffer   unsafe.Pointer
	length   int
	capacity int
	alloc    allocator.Allocator
}

// GetZeroInitialized returns a zero-valued, uninitialized Array: buffer is
// nil, length and capacity are 0. It is always safe to call Fini on it.
func GetZeroInitialized[E Element]() Array[E] {
	return Array[E]{}
}

func elemSize[E Element]() uintptr {
	var e E
	return unsafe.Sizeof(e)
}

// Init allocates a new Array with the given initial capacity, using alloc.
func Init[E Element](capacity int, alloc allocator.Allocator) (Array[E], error) {
	if capacity < 0 {
		return Array[E]{}, rcerror.New(rcerror.InvalidArgument, "capacity must not be negative")
	}
	if !allocator.IsValid(&alloc) {
		return Array[E]{}, rcerror.New(rcerror.InvalidArgument, "invalid allocator")
	}
	a := Array[E]{alloc: alloc}
	if capacity == 0 {
		return a, nil
	}
	ptr := alloc.ZeroAllocate(uintptr(capacity), elemSize[E](), alloc.State)
	if ptr == nil {
		return Array[E]{}, rcerror.New(rcerror.BadAlloc, "failed to allocate byte array buffer")
	}
	a.buffer = ptr
	a.capacity = capacity
	return a, nil
}

// Fini releases the array's storage. It is a no-op on a zero-initialized
// or already-finalized Array.
func (a *Array[E]) Fini() {
	if a.buffer == nil {
		*a = Array[E]{}
		return
	}
	if allocator.IsValid(&a.alloc) {
		a.alloc.Deallocate(a.buffer, a.alloc.State)
	}
	*a = Array[E]{}
}

// Length returns the number of valid elements.
func (a *Array[E]) Length() int { return a.length }

// Capacity returns the number of elements the current buffer can hold.
func (a *Array[E]) Capacity() int { return a.capacity }

// Slice returns a Go slice view over the valid (length) portion of the
// array's buffer. The slice is invalidated by any subsequent Resize call.
func (a *Array[E]) Slice() []E {
	if a.buffer == nil || a.length == 0 {
		return nil
	}
	return unsafe.Slice((*E)(a.buffer), a.length)
}

// FullSlice returns a Go slice view over the whole (capacity) portion of
// the array's buffer, including bytes beyond the current length. Used by
// callers, such as threadattr's core-affinity bitset, that address the
// buffer by capacity rather than length.
func (a *Array[E]) FullSlice() []E {
	if a.buffer == nil || a.capacity == 0 {
		return nil
	}
	return unsafe.Slice((*E)(a.buffer), a.capacity)
}

// Resize changes the array's capacity to newSize, growing the underlying
// buffer as required. Length is never raised; it is only clamped down when
// the new capacity is smaller than it.
//
// Growth uses allocator.ReallocateOrFail: on failure the array is reset to
// its zero form (buffer = nil, capacity = 0, length = 0) and BadAlloc is
// returned.
//
// Shrinking to a smaller capacity is allowed and clamps length downward,
// but shrinking to exactly zero is rejected with InvalidArgument, leaving
// the array unchanged, per spec.
func (a *Array[E]) Resize(newSize int) error {
	if newSize < 0 {
		return rcerror.New(rcerror.InvalidArgument, "new size must not be negative")
	}
	if newSize == 0 {
		return rcerror.New(rcerror.InvalidArgument, "resize to zero is disallowed; use Fini")
	}

	if newSize <= a.capacity {
		// shrink: update capacity and clamp length down, no reallocation.
		a.capacity = newSize
		if a.length > newSize {
			a.length = newSize
		}
		return nil
	}

	if !allocator.IsValid(&a.alloc) {
		*a = Array[E]{}
		return rcerror.New(rcerror.BadAlloc, "invalid allocator")
	}

	newBytes := uintptr(newSize) * elemSize[E]()
	ptr := allocator.ReallocateOrFail(&a.alloc, a.buffer, newBytes)
	if ptr == nil {
		alloc := a.alloc
		*a = Array[E]{}
		a.alloc = alloc
		return rcerror.New(rcerror.BadAlloc, "failed to grow byte array buffer")
	}
	// zero the newly extended region, matching zero_allocate-style growth.
	newSlice := unsafe.Slice((*E)(ptr), newSize)
	for i := a.capacity; i < newSize; i++ {
		newSlice[i] = 0
	}
	a.buffer = ptr
	a.capacity = newSize
	if a.length > newSize {
		a.length = newSize
	}
	return nil
}
