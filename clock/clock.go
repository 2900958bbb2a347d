// Package clock implements the spec's multi-source clock abstraction:
// system and steady time sources, and a ROS-style override source with
// pre/post update notification callbacks.
package clock

import (
	"math"
	"sync"
	"time"

	"github.com/ros2/rcutils-go/internal/gid"
	"github.com/ros2/rcutils-go/rcerror"
)

type (
	// SourceKind identifies the flavor of a clock Source.
	SourceKind int

	// TimePoint is a signed nanosecond count tagged with the Source kind
	// that produced it.
	TimePoint struct {
		Nanos int64
		Kind  SourceKind
	}

	// Duration is a signed nanosecond count.
	Duration int64

	// GetNowFunc produces the current TimePoint for a Source.
	GetNowFunc func(src *Source) (TimePoint, error)

	// UpdateCallback is fired around a ROS-source override change.
	UpdateCallback func(old, new TimePoint)

	// Source models one of the spec's clock sources.
	Source struct {
		Kind       SourceKind
		GetNow     GetNowFunc
		PreUpdate  UpdateCallback // ROS kind only
		PostUpdate UpdateCallback // ROS kind only
		ros        *rosState      // non-nil iff Kind == ROS
	}
)

const (
	Uninitialized SourceKind = iota
	ROS
	System
	Steady
)

// SourceInit constructs a Source of the given kind.
func SourceInit(kind SourceKind) (Source, error) {
	switch kind {
	case System:
		return systemSource(), nil
	case Steady:
		return steadySource(), nil
	case ROS:
		return rosSource(), nil
	default:
		return Source{}, rcerror.New(rcerror.InvalidArgument, "unknown or uninitialized clock source kind")
	}
}

// SourceFini resets src to its zero (uninitialized) form.
func SourceFini(src *Source) {
	*src = Source{}
}

// SourceValid reports whether src is usable.
func SourceValid(src *Source) bool {
	return src != nil && src.Kind != Uninitialized && src.GetNow != nil
}

// Now returns the source's current TimePoint.
func (s *Source) Now() (TimePoint, error) {
	if !SourceValid(s) {
		return TimePoint{}, rcerror.New(rcerror.InvalidArgument, "invalid clock source")
	}
	return s.GetNow(s)
}

// TimePointInit sets *tp to src's current time.
func TimePointInit(tp *TimePoint, src *Source) error {
	now, err := src.Now()
	if err != nil {
		return err
	}
	*tp = now
	return nil
}

// TimePointGetNow refreshes *tp to src's current time; it is an alias of
// TimePointInit kept distinct to mirror the spec's two named operations.
func TimePointGetNow(tp *TimePoint, src *Source) error {
	return TimePointInit(tp, src)
}

// DifferenceTimes computes finish - start. Both inputs must share a source
// kind; the result inherits that kind.
func DifferenceTimes(start, finish TimePoint) (Duration, error) {
	if start.Kind != finish.Kind {
		return 0, rcerror.New(rcerror.InvalidArgument, "time points must share a source kind")
	}
	return Duration(finish.Nanos - start.Nanos), nil
}

// --- system time ---

func systemSource() Source {
	return Source{
		Kind: System,
		GetNow: func(*Source) (TimePoint, error) {
			n, err := SystemTimeNow()
			if err != nil {
				return TimePoint{}, err
			}
			return TimePoint{Nanos: n, Kind: System}, nil
		},
	}
}

// timeNow is overridable for testing, matching the pattern used
// throughout the teacher's own time-dependent packages (e.g.
// go-catrate's `var timeNow = time.Now`).
var timeNow = time.Now

const nanosPerSecond = int64(time.Second)

// SystemTimeNow returns wall-clock nanoseconds since the Unix epoch,
// detecting and reporting arithmetic overflow rather than returning a
// wrapped value.
func SystemTimeNow() (int64, error) {
	t := timeNow()
	sec := t.Unix()
	nsec := int64(t.Nanosecond())

	// overflow check: sec*nanosPerSecond+nsec must not exceed int64 range.
	const maxSec = math.MaxInt64 / int64(time.Second)
	if sec > maxSec-1 || sec < -maxSec+1 {
		return 0, rcerror.New(rcerror.Error, "system time overflowed nanosecond range")
	}
	return sec*nanosPerSecond + nsec, nil
}

// --- steady time ---

func steadySource() Source {
	return Source{
		Kind: Steady,
		GetNow: func(*Source) (TimePoint, error) {
			n, err := SteadyTimeNow()
			if err != nil {
				return TimePoint{}, err
			}
			return TimePoint{Nanos: n, Kind: Steady}, nil
		},
	}
}

// steadyEpoch anchors the steady clock's implementation-defined origin to
// process start; time.Since(steadyEpoch) reports monotonic elapsed time
// because Go's time.Time retains a monotonic reading alongside the wall
// clock one (see the time package docs on "Monotonic Clocks").
var steadyEpoch = timeNow()

var (
	steadyMu   sync.Mutex
	steadyLast = map[uint64]int64{}
)

// SteadyTimeNow returns monotonic nanoseconds from an implementation-
// defined origin. A negative delta between consecutive samples observed
// by the same goroutine is reported as an error, and arithmetic overflow
// converting to nanoseconds is likewise reported rather than wrapped.
func SteadyTimeNow() (int64, error) {
	elapsed := timeNow().Sub(steadyEpoch)
	n := int64(elapsed)
	if elapsed == time.Duration(math.MaxInt64) || elapsed == time.Duration(math.MinInt64) {
		// time.Time.Sub saturates at the Duration bounds on overflow;
		// report a saturated result rather than returning it.
		return 0, rcerror.New(rcerror.Error, "steady time overflowed nanosecond range")
	}

	id := gid.Current()
	steadyMu.Lock()
	defer steadyMu.Unlock()
	if last, ok := steadyLast[id]; ok && n < last {
		return 0, rcerror.New(rcerror.Error, "non-monotonic steady time")
	}
	steadyLast[id] = n
	return n, nil
}
