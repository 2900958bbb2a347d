// Package logger implements the spec's hierarchical logger: severity
// resolution over dotted logger names, format-template compilation,
// throttle/once/skipfirst call-site state, and optional ANSI
// colorization.
package logger

import (
	"time"

	"github.com/ros2/rcutils-go/clock"
)

// Log is the core emission primitive every macro family expands to. It
// bails immediately if name/severity is not enabled, otherwise captures
// the current system time and dispatches to the installed handler.
func Log(loc Location, sev Severity, name, format string, args ...any) {
	if !IsEnabledFor(name, sev) {
		return
	}
	now, err := clock.SystemTimeNow()
	if err != nil {
		now = 0
	}

	global.guardMu.Lock()
	h := global.handler
	global.guardMu.Unlock()
	if h == nil {
		return
	}

	h(Record{
		Location:  loc,
		Severity:  sev,
		Name:      name,
		Timestamp: now,
		Message:   formatMessage(format, args...),
	})
}

// Once fires the call identified by key at most once per process, until
// Shutdown clears the call-site state.
func Once(key string, loc Location, sev Severity, name, format string, args ...any) {
	if !IsEnabledFor(name, sev) {
		return
	}
	if !callSiteFor(key).once() {
		return
	}
	Log(loc, sev, name, format, args...)
}

// Expression fires iff cond is true.
func Expression(cond bool, loc Location, sev Severity, name, format string, args ...any) {
	if !cond {
		return
	}
	Log(loc, sev, name, format, args...)
}

// Function fires iff fn() returns true. fn is not invoked unless sev is
// already enabled for name, per spec.md §4.8.
func Function(fn func() bool, loc Location, sev Severity, name, format string, args ...any) {
	if !IsEnabledFor(name, sev) {
		return
	}
	if !fn() {
		return
	}
	Log(loc, sev, name, format, args...)
}

// SkipFirst skips the first call at key, firing every call thereafter.
func SkipFirst(key string, loc Location, sev Severity, name, format string, args ...any) {
	if !IsEnabledFor(name, sev) {
		return
	}
	if !callSiteFor(key).skipFirst() {
		return
	}
	Log(loc, sev, name, format, args...)
}

// Throttle fires at most once per period at key. clockKind names the
// clock source the period is measured against (spec.md §4.8's
// `clock_kind` parameter); the underlying rate limiter always measures
// wall-clock time, so only clock.System and clock.Steady are meaningful
// here and both yield the same throttling behavior in this
// implementation.
func Throttle(key string, clockKind clock.SourceKind, period time.Duration, loc Location, sev Severity, name, format string, args ...any) {
	_ = clockKind
	if !IsEnabledFor(name, sev) {
		return
	}
	if !callSiteFor(key).throttle(period) {
		return
	}
	Log(loc, sev, name, format, args...)
}

// SkipFirstThrottle combines SkipFirst and Throttle.
func SkipFirstThrottle(key string, clockKind clock.SourceKind, period time.Duration, loc Location, sev Severity, name, format string, args ...any) {
	_ = clockKind
	if !IsEnabledFor(name, sev) {
		return
	}
	cs := callSiteFor(key)
	if !cs.skipFirstSeenAndThrottle(period) {
		return
	}
	Log(loc, sev, name, format, args...)
}
