// Package gid extracts the identity of the calling goroutine.
//
// Go has no public API for goroutine identity. This package parses the
// "goroutine N [running]:" header that runtime.Stack always writes first,
// the same trick rcutils-go's teacher package uses to recognise "is this
// the event loop's own goroutine" (see eventloop.Loop.isLoopThread).
package gid

import "runtime"

// Current returns the id of the calling goroutine.
//
// The id is stable for the lifetime of the goroutine and is never reused
// while that goroutine is alive, but the Go runtime may reuse it after the
// goroutine exits. Callers must not persist ids across goroutine lifetimes.
func Current() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	const prefix = "goroutine "
	var id uint64
	for i := len(prefix); i < n; i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
