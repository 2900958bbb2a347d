// Package arraylist implements the spec's ordered sequence container:
// append, indexed set/get by value, and indexed remove with tail shift,
// doubling capacity on overflow.
package arraylist

import "github.com/ros2/rcutils-go/rcerror"

// List is a growable, ordered sequence of elements of type E.
type List[E any] struct {
	data []E
}

// Init constructs a List with the given initial capacity.
func Init[E any](initialCapacity int) (List[E], error) {
	if initialCapacity < 0 {
		return List[E]{}, rcerror.New(rcerror.InvalidArgument, "initial capacity must not be negative")
	}
	return List[E]{data: make([]E, 0, initialCapacity)}, nil
}

// Fini releases the list's storage. Idempotent.
func (l *List[E]) Fini() {
	l.data = nil
}

// Size returns the number of elements currently stored.
func (l *List[E]) Size() int { return len(l.data) }

// Add appends elem, growing the backing storage (doubling, starting from
// 1) if it is at capacity.
func (l *List[E]) Add(elem E) {
	if len(l.data) == cap(l.data) {
		newCap := 2 * cap(l.data)
		if newCap == 0 {
			newCap = 1
		}
		grown := make([]E, len(l.data), newCap)
		copy(grown, l.data)
		l.data = grown
	}
	l.data = append(l.data, elem)
}

// Set overwrites the element at index.
func (l *List[E]) Set(index int, elem E) error {
	if index < 0 || index >= len(l.data) {
		return rcerror.New(rcerror.InvalidArgument, "index out of range")
	}
	l.data[index] = elem
	return nil
}

// Get copies out the element at index.
func (l *List[E]) Get(index int) (E, error) {
	var zero E
	if index < 0 || index >= len(l.data) {
		return zero, rcerror.New(rcerror.InvalidArgument, "index out of range")
	}
	return l.data[index], nil
}

// Remove deletes the element at index, shifting the tail left by one.
func (l *List[E]) Remove(index int) error {
	if index < 0 || index >= len(l.data) {
		return rcerror.New(rcerror.InvalidArgument, "index out of range")
	}
	l.data = append(l.data[:index], l.data[index+1:]...)
	return nil
}
