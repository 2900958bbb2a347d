// Package faultinjection implements the spec's fault-injection counter:
// a process-wide countdown that lets tests force allocation (or other)
// failures deterministically after a fixed number of successful calls.
package faultinjection

import "sync/atomic"

// NeverFail is the sentinel count meaning "never fail".
const NeverFail int64 = -1

var count atomic.Int64

func init() {
	count.Store(NeverFail)
}

// SetCount sets the number of calls that will succeed before one MaybeFail
// call reports failure; after that call injection is disabled again. A
// negative value disables fault injection.
func SetCount(n int64) {
	if n < 0 {
		n = NeverFail
	}
	count.Store(n)
}

// GetCount returns the current countdown value.
func GetCount() int64 {
	return count.Load()
}

// MaybeFail atomically decrements the countdown and returns the
// pre-decrement value. A caller that observes exactly 0 has "won" this
// probe and is expected to synthesize a failure; any other non-negative
// value means the probe is still live but has not yet won; NeverFail (or
// any other value already at or below it) means injection is disabled
// and is returned unchanged, with no further decrement.
//
// Implemented as a compare-and-swap retry loop rather than a plain
// atomic.Add, since the countdown must stop decrementing once it reaches
// NeverFail (grounded on the same compare-and-swap guard shape used by
// catrate.Limiter's atomic[0]/atomic[1] next-allowed-event fields).
func MaybeFail() int64 {
	for {
		cur := count.Load()
		if cur <= NeverFail {
			return NeverFail
		}
		if count.CompareAndSwap(cur, cur-1) {
			return cur
		}
	}
}

// Won reports whether a MaybeFail result represents a winning probe.
func Won(probe int64) bool {
	return probe == 0
}

// Reset restores the default never-fail state.
func Reset() {
	count.Store(NeverFail)
}

// MaybeReturnError is the Go shape of the spec's MAYBE_RETURN_ERROR
// macro: it probes the counter and, on a winning probe, returns err;
// otherwise it returns nil and the caller proceeds normally. Intended to
// be used as: `if err := faultinjection.MaybeReturnError(rcerror.New(...)); err != nil { return err }`.
func MaybeReturnError(err error) error {
	if Won(MaybeFail()) {
		return err
	}
	return nil
}

// MaybeFailBlock is the Go shape of the spec's MAYBE_FAIL macro: it runs
// fn only when the probe wins.
func MaybeFailBlock(fn func()) {
	if Won(MaybeFail()) {
		fn()
	}
}

// Test is the Go shape of the spec's FAULT_INJECTION_TEST macro: it
// repeatedly calls code, setting the injection counter to an
// incrementing start value (0, 1, 2, ...) before each call, until a
// round completes with the counter left above NeverFail — i.e. code ran
// clean without any probe winning, which only happens once the start
// value exceeds code's actual number of reachable injection points.
// That exhausts every distinct point code can reach along its ordered
// decrement sequence, each as the one that "wins" exactly once.
//
// (Resolved against original_source/src/testing/fault_injection.c's
// set_count/maybe_fail pair, since the spec's prose description of the
// termination predicate reads ambiguously in isolation.)
func Test(code func()) {
	for i := int64(0); ; i++ {
		SetCount(i)
		code()
		if GetCount() > NeverFail {
			Reset()
			return
		}
	}
}
