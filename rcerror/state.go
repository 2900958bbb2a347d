package rcerror

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/ros2/rcutils-go/allocator"
	"github.com/ros2/rcutils-go/internal/gid"
)

const (
	// MessageMax is the maximum number of bytes retained for an error
	// message.
	MessageMax = 768
	// PathMax is the maximum number of bytes retained for a file path.
	PathMax = 228
	// FormattedMax is the maximum number of bytes in the cached
	// "<msg>, at <file>:<line>" formatted string.
	FormattedMax = 1024
)

type (
	// State is the per-goroutine error record.
	State struct {
		Message string
		File    string
		Line    int64
		set     bool
		// cached formatted form; recomputed on every SetError.
		formatted string
	}

	slot struct {
		mu        sync.Mutex
		state     State
		allocator allocator.Allocator
		initOnce  bool
	}
)

var (
	slotsMu sync.RWMutex
	slots   = map[uint64]*slot{}

	// reportErrorHandlingErrors mirrors the "report error-handling errors"
	// build selection from the spec, exposed as a runtime toggle since Go
	// has no preprocessor. Default off.
	reportErrorHandlingErrors bool
)

// SetReportErrorHandlingErrors enables or disables the stderr diagnostic
// emitted when SetError overwrites an already-set state with a different
// message.
func SetReportErrorHandlingErrors(enabled bool) {
	reportErrorHandlingErrors = enabled
}

func currentSlot(create bool) *slot {
	id := gid.Current()

	slotsMu.RLock()
	s, ok := slots[id]
	slotsMu.RUnlock()
	if ok || !create {
		return s
	}

	slotsMu.Lock()
	defer slotsMu.Unlock()
	if s, ok = slots[id]; ok {
		return s
	}
	s = &slot{}
	slots[id] = s
	return s
}

// InitializeThreadLocalStorage optionally pre-creates the current
// goroutine's error slot, recording alloc as the allocator it should be
// considered to use. It is idempotent: calling it again (including after a
// lazy first-set initialization using the default allocator) is a no-op.
func InitializeThreadLocalStorage(alloc allocator.Allocator) error {
	if !allocator.IsValid(&alloc) {
		return New(InvalidArgument, "invalid allocator")
	}
	s := currentSlot(true)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initOnce {
		s.allocator = alloc
		s.initOnce = true
	}
	return nil
}

// ReleaseCurrent frees the calling goroutine's error slot.
//
// Go provides no thread/goroutine-exit hook (unlike the pthread TLS
// destructors the spec's "freed at thread exit" lifecycle assumes), so
// long-lived pooled goroutines that use this package should call
// ReleaseCurrent before they exit, to bound the size of the slot table.
// Short-lived goroutines may skip this; the table will simply retain a
// small, harmless residual entry.
func ReleaseCurrent() {
	id := gid.Current()
	slotsMu.Lock()
	delete(slots, id)
	slotsMu.Unlock()
}

func truncateMessage(msg string) string {
	if len(msg) <= MessageMax {
		return msg
	}
	return msg[:MessageMax]
}

// truncateFile keeps the tail of an over-long path, per the spec: "File
// paths exceeding the capacity are truncated from the front, keeping the
// tail". A three-byte ellipsis marker is reserved within the cap when a
// truncation actually occurs.
func truncateFile(file string) string {
	if len(file) <= PathMax {
		return file
	}
	const ellipsis = "..."
	keep := PathMax - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return ellipsis + file[len(file)-keep:]
}

func formatChain(msg, file string, line int64) string {
	s := msg + ", at " + file + ":" + strconv.FormatInt(line, 10)
	if len(s) > FormattedMax {
		s = s[:FormattedMax]
	}
	return s
}

// SetError records msg as the current goroutine's error, tagged with the
// given file and line. A formatted "<msg>, at <file>:<line>" form is
// computed and cached for GetErrorString.
//
// If the slot was already set with a different message, and
// SetReportErrorHandlingErrors(true) was called, a diagnostic line is
// printed to os.Stderr describing the overwritten error; this is always
// skipped when the new message is byte-equal to the existing one, so that
// re-setting an error while propagating it up the stack doesn't spam
// stderr.
func SetError(msg, file string, line int64) {
	msg = truncateMessage(msg)
	file = truncateFile(file)

	s := currentSlot(true)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initOnce {
		s.allocator = allocator.DefaultAllocator()
		s.initOnce = true
	}

	if s.state.set && reportErrorHandlingErrors && s.state.Message != msg {
		fmt.Fprintf(os.Stderr, "rcerror: overwriting previous error %q with %q\n", s.state.formatted, msg)
	}

	s.state = State{
		Message:   msg,
		File:      file,
		Line:      line,
		set:       true,
		formatted: formatChain(msg, file, line),
	}
}

// SetErrorf formats into a fixed buffer (capped at FormattedMax bytes) and
// delegates to SetError. If the formatted result contains a Go fmt "bad
// verb"/"missing argument" marker (the closest idiomatic analog to "the
// underlying numeric formatter failed"), the failure is reported to
// os.Stderr instead, and the error state is left unchanged.
func SetErrorf(file string, line int64, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > FormattedMax {
		msg = msg[:FormattedMax]
	}
	if strings.Contains(msg, "%!") {
		fmt.Fprintf(os.Stderr, "rcerror: failed to format error message: %q\n", msg)
		return
	}
	SetError(msg, file, line)
}

// GetErrorState returns the current goroutine's error state, or nil if no
// slot has ever been created for it (i.e. SetError/InitializeThreadLocalStorage
// was never called on this goroutine).
func GetErrorState() *State {
	s := currentSlot(false)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.state
	return &cp
}

// GetErrorString always returns a valid string: the cached
// "<msg>, at <file>:<line>" form, or the literal "error not set" if unset.
func GetErrorString() string {
	st := GetErrorState()
	if st == nil || !st.set {
		return "error not set"
	}
	return st.formatted
}

// IsSet reports whether the calling goroutine currently has an error set.
func IsSet() bool {
	st := GetErrorState()
	return st != nil && st.set
}

// Reset clears the calling goroutine's error state, without removing its
// slot (InitializeThreadLocalStorage's allocator association, if any,
// survives a Reset).
func Reset() {
	s := currentSlot(false)
	if s == nil {
		return
	}
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
}

// RequireNonNil is the functional equivalent of the spec's
// "return E if argument is null, setting a message that names the
// argument" macro. If isNil, it sets an InvalidArgument error naming
// argName and returns it; otherwise it returns nil.
func RequireNonNil(argName string, isNil bool, file string, line int64) error {
	if !isNil {
		return nil
	}
	err := New(InvalidArgument, argName+" must not be nil")
	SetError(err.Error(), file, line)
	return err
}

// IfNil is the functional equivalent of the spec's "evaluate arbitrary
// statement if value is null" macro.
func IfNil(isNil bool, fn func()) {
	if isNil && fn != nil {
		fn()
	}
}
