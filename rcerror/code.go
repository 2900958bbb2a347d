// Package rcerror implements the goroutine-local structured error state
// shared by every component in this module, plus the small error-code
// enumeration those components return.
//
// "Thread-local" in the spec this package implements from is realized here
// as "goroutine-local": the error slot is keyed by the calling goroutine's
// id (internal/gid), the closest addressable analog Go exposes to C's
// thread-local storage. Every invariant about visibility ("private to the
// calling thread; no visibility to other threads") holds identically for
// goroutines.
package rcerror

import "fmt"

// Code mirrors the numeric error-return contract: values are part of the
// contract, not the names, so they must not be renumbered.
type Code int

const (
	OK              Code = 0
	Error           Code = 1
	BadAlloc        Code = 2
	InvalidArgument Code = 11

	// logger-specific
	SeverityStringInvalid Code = 100
	SeverityMapInvalid    Code = 101

	// map-specific
	AlreadyInit    Code = 110
	NotEnoughSpace Code = 111
	KeyNotFound    Code = 112
	NotFound       Code = 113

	// hash map-specific
	HashMapNoMoreEntries Code = 120
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case Error:
		return "ERROR"
	case BadAlloc:
		return "BAD_ALLOC"
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case SeverityStringInvalid:
		return "SEVERITY_STRING_INVALID"
	case SeverityMapInvalid:
		return "SEVERITY_MAP_INVALID"
	case AlreadyInit:
		return "ALREADY_INIT"
	case NotEnoughSpace:
		return "NOT_ENOUGH_SPACE"
	case KeyNotFound:
		return "KEY_NOT_FOUND"
	case NotFound:
		return "NOT_FOUND"
	case HashMapNoMoreEntries:
		return "HASH_MAP_NO_MORE_ENTRIES"
	default:
		return fmt.Sprintf("CODE(%d)", int(c))
	}
}

// CodedError is an error carrying one of the Code values above.
type CodedError struct {
	Code Code
	Msg  string
}

func (e *CodedError) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// New returns a CodedError. Lookup-miss and capacity errors (KeyNotFound,
// NotFound, NotEnoughSpace) are deliberately not routed through SetError by
// callers, per the spec's error taxonomy: they are not necessarily
// programmer errors, so no thread-local message is set for them.
func New(code Code, msg string) error {
	return &CodedError{Code: code, Msg: msg}
}

// Newf is New with fmt.Sprintf-style formatting of msg.
func Newf(code Code, format string, args ...any) error {
	return New(code, fmt.Sprintf(format, args...))
}

// CodeOf extracts the Code from err, returning Error if err is non-nil but
// not a *CodedError, or OK if err is nil.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var ce *CodedError
	if asCodedError(err, &ce) {
		return ce.Code
	}
	return Error
}

func asCodedError(err error, target **CodedError) bool {
	for err != nil {
		if ce, ok := err.(*CodedError); ok {
			*target = ce
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
