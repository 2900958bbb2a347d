// Package stringarray implements the spec's owned, possibly-sparse array
// of independently-owned strings.
package stringarray

import "github.com/ros2/rcutils-go/rcerror"

// Array is a sequence of independently-owned, possibly-nil strings.
//
// Unlike the C original, Go strings are immutable and garbage collected,
// so "ownership" here means only that Array is the sole logical owner of
// each slot's content for the purpose of the spec's lifecycle contract
// (Fini logically "frees" every element, i.e. clears the slice).
type Array struct {
	data []*string
}

// Init allocates an Array of size independently-owned (initially nil)
// string slots.
func Init(size int) (Array, error) {
	if size < 0 {
		return Array{}, rcerror.New(rcerror.InvalidArgument, "size must not be negative")
	}
	return Array{data: make([]*string, size)}, nil
}

// Fini releases the array's storage. Idempotent on a zero-initialized or
// already-finalized Array.
func (a *Array) Fini() {
	a.data = nil
}

// Size returns the number of slots.
func (a *Array) Size() int { return len(a.data) }

// Set stores a copy of value at index, taking ownership of the copy. A nil
// value clears that slot (sparse arrays are permitted).
func (a *Array) Set(index int, value *string) error {
	if index < 0 || index >= len(a.data) {
		return rcerror.New(rcerror.InvalidArgument, "index out of range")
	}
	if value == nil {
		a.data[index] = nil
		return nil
	}
	v := *value
	a.data[index] = &v
	return nil
}

// Get returns the string stored at index, or nil if that slot is empty.
func (a *Array) Get(index int) (*string, error) {
	if index < 0 || index >= len(a.data) {
		return nil, rcerror.New(rcerror.InvalidArgument, "index out of range")
	}
	return a.data[index], nil
}

// Copy returns a deep copy of a: every non-nil element is independently
// owned by the result.
func (a *Array) Copy() Array {
	out := Array{data: make([]*string, len(a.data))}
	for i, v := range a.data {
		if v == nil {
			continue
		}
		cp := *v
		out.data[i] = &cp
	}
	return out
}
