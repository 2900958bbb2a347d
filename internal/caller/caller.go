// Package caller captures information about the Go call stack, skipping
// frames that belong to a given package directory.
//
// Adapted from logiface/internal/runtime.CallerSkipPackage (the teacher's
// helper for identifying "the first frame outside of this package", used
// there to key rate-limit categories by call site).
package caller

import (
	"path/filepath"
	"runtime"
)

// Frame identifies a single call-stack location.
type Frame struct {
	Function string
	File     string
	Entry    uintptr
	Line     int
}

// Zero reports whether f is the zero Frame, i.e. capture failed.
func (f Frame) Zero() bool { return f == Frame{} }

// SkipPackage walks the stack starting i frames above its own caller,
// skipping any frame whose file lives in pkgDir, and returns the first
// frame found outside of it. If pkgDir is empty, no frames are skipped.
func SkipPackage(pkgDir string, i int) Frame {
	const size = 1 << 4
	var (
		callers = make([]uintptr, size)
		frames  *runtime.Frames
		frame   runtime.Frame
		ok      bool
	)
loop:
	for i += 2; i > 0; i += size {
		callers = callers[:runtime.Callers(i, callers[:])]
		frames = runtime.CallersFrames(callers)
		for frame, ok = frames.Next(); ok; frame, ok = frames.Next() {
			if pkgDir == "" || filepath.Dir(frame.File) != pkgDir {
				break loop
			}
		}
		if len(callers) != size {
			break
		}
	}
	if ok {
		return Frame{
			Function: frame.Function,
			File:     frame.File,
			Entry:    frame.Entry,
			Line:     frame.Line,
		}
	}
	return Frame{}
}

// ThisPackageDir returns the directory of the file it's called from,
// suitable for passing as pkgDir to SkipPackage to skip a whole package.
func ThisPackageDir() string {
	_, file, _, _ := runtime.Caller(1)
	return filepath.Dir(file)
}
