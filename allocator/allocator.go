// Package allocator defines the memory-allocation contract shared by every
// container in this module.
//
// The contract is kept as a struct of function pointers, per design: that
// shape is what lets it cross a future C ABI boundary (a cgo shim can
// populate one directly), while Capability gives idiomatic Go call sites a
// small interface to implement instead of filling in four funcs by hand.
package allocator

import "unsafe"

type (
	// Allocator is a value-type, four-function memory capability, plus an
	// opaque State pointer threaded through to each function. It is
	// trivially copyable; a copy remains safe to use for as long as the
	// referenced State (if any) outlives every outstanding allocation made
	// through it.
	Allocator struct {
		Allocate     func(size uintptr, state unsafe.Pointer) unsafe.Pointer
		ZeroAllocate func(count, elementSize uintptr, state unsafe.Pointer) unsafe.Pointer
		Reallocate   func(ptr unsafe.Pointer, newSize uintptr, state unsafe.Pointer) unsafe.Pointer
		Deallocate   func(ptr unsafe.Pointer, state unsafe.Pointer)
		State        unsafe.Pointer
	}

	// Capability is the thin interface adapter for internal, idiomatic Go
	// use, mirroring the small single-purpose interfaces used throughout
	// the logging stack this module is grounded on (e.g. logiface.Writer).
	Capability interface {
		Allocate(size uintptr) unsafe.Pointer
		ZeroAllocate(count, elementSize uintptr) unsafe.Pointer
		Reallocate(ptr unsafe.Pointer, newSize uintptr) unsafe.Pointer
		Deallocate(ptr unsafe.Pointer)
	}
)

// IsValid reports whether every function pointer on a is non-nil.
func IsValid(a *Allocator) bool {
	return a != nil &&
		a.Allocate != nil &&
		a.ZeroAllocate != nil &&
		a.Reallocate != nil &&
		a.Deallocate != nil
}

// ReallocateOrFail calls a.Reallocate(ptr, newSize); if that fails it also
// calls a.Deallocate(ptr) before returning nil, so callers that cannot
// tolerate a retained dangling pointer never have to track ownership of
// ptr across a failed reallocation.
//
// If a (or any of its function pointers) is invalid, ReallocateOrFail
// returns nil without touching ptr.
func ReallocateOrFail(a *Allocator, ptr unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	if !IsValid(a) {
		return nil
	}
	out := a.Reallocate(ptr, newSize, a.State)
	if out == nil {
		a.Deallocate(ptr, a.State)
	}
	return out
}

// FromCapability adapts a Capability into the function-pointer Allocator
// form, for interop with call sites (or, eventually, cgo exports) that
// require the struct shape.
func FromCapability(c Capability) Allocator {
	if c == nil {
		return Allocator{}
	}
	return Allocator{
		Allocate:     func(size uintptr, _ unsafe.Pointer) unsafe.Pointer { return c.Allocate(size) },
		ZeroAllocate: func(count, elementSize uintptr, _ unsafe.Pointer) unsafe.Pointer { return c.ZeroAllocate(count, elementSize) },
		Reallocate:   func(ptr unsafe.Pointer, newSize uintptr, _ unsafe.Pointer) unsafe.Pointer { return c.Reallocate(ptr, newSize) },
		Deallocate:   func(ptr unsafe.Pointer, _ unsafe.Pointer) { c.Deallocate(ptr) },
	}
}
