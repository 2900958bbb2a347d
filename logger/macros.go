package logger

import (
	"strconv"
	"time"

	"github.com/ros2/rcutils-go/clock"
	"github.com/ros2/rcutils-go/internal/caller"
)

// This file provides the "unnamed"/"_NAMED" convenience wrappers for the
// spec's LOG_<SEV> / LOG_<SEV>_NAMED macro families. The remaining
// families (_ONCE, _EXPRESSION, _FUNCTION, _SKIPFIRST, _THROTTLE,
// _SKIPFIRST_THROTTLE) are implemented generically in logger.go,
// parameterized by Severity, since Go has no preprocessor and a
// Severity parameter is the idiomatic substitute for what the C
// implementation spells out as five per-level macro names (one per
// severity).

var pkgDir = caller.ThisPackageDir()

func here() Location {
	f := caller.SkipPackage(pkgDir, 0)
	return Location{FunctionName: f.Function, FileName: f.File, LineNumber: int64(f.Line)}
}

func siteKey(loc Location) string {
	return loc.FileName + ":" + strconv.FormatInt(loc.LineNumber, 10)
}

func logUnnamed(sev Severity, format string, args ...any) {
	Log(here(), sev, "", format, args...)
}

func logNamed(sev Severity, name, format string, args ...any) {
	Log(here(), sev, name, format, args...)
}

func Debugf(format string, args ...any)           { logUnnamed(Debug, format, args...) }
func Infof(format string, args ...any)             { logUnnamed(Info, format, args...) }
func Warnf(format string, args ...any)             { logUnnamed(Warn, format, args...) }
func Errorf(format string, args ...any)            { logUnnamed(Error, format, args...) }
func Fatalf(format string, args ...any)            { logUnnamed(Fatal, format, args...) }

func DebugNamed(name, format string, args ...any) { logNamed(Debug, name, format, args...) }
func InfoNamed(name, format string, args ...any)   { logNamed(Info, name, format, args...) }
func WarnNamed(name, format string, args ...any)   { logNamed(Warn, name, format, args...) }
func ErrorNamed(name, format string, args ...any)  { logNamed(Error, name, format, args...) }
func FatalNamed(name, format string, args ...any)  { logNamed(Fatal, name, format, args...) }

// OnceHere is the call-site-bound LOG_<SEV>_ONCE convenience: the call
// site key is derived automatically from the caller's location.
func OnceHere(sev Severity, name, format string, args ...any) {
	loc := here()
	Once(siteKey(loc), loc, sev, name, format, args...)
}

// SkipFirstHere is the auto-keyed LOG_<SEV>_SKIPFIRST convenience.
func SkipFirstHere(sev Severity, name, format string, args ...any) {
	loc := here()
	SkipFirst(siteKey(loc), loc, sev, name, format, args...)
}

// ThrottleHere is the auto-keyed LOG_<SEV>_THROTTLE convenience.
func ThrottleHere(sev Severity, clockKind clock.SourceKind, period time.Duration, name, format string, args ...any) {
	loc := here()
	Throttle(siteKey(loc), clockKind, period, loc, sev, name, format, args...)
}

// SkipFirstThrottleHere is the auto-keyed LOG_<SEV>_SKIPFIRST_THROTTLE
// convenience.
func SkipFirstThrottleHere(sev Severity, clockKind clock.SourceKind, period time.Duration, name, format string, args ...any) {
	loc := here()
	SkipFirstThrottle(siteKey(loc), clockKind, period, loc, sev, name, format, args...)
}
