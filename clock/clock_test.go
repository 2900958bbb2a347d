package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceInit_UnknownKind(t *testing.T) {
	_, err := SourceInit(Uninitialized)
	assert.Error(t, err)
}

func TestSourceValid(t *testing.T) {
	assert.False(t, SourceValid(nil))
	assert.False(t, SourceValid(&Source{}))

	s, err := SourceInit(System)
	require.NoError(t, err)
	assert.True(t, SourceValid(&s))
}

func TestSystemTimeNow_IsNearWallClock(t *testing.T) {
	n, err := SystemTimeNow()
	require.NoError(t, err)
	want := time.Now().UnixNano()
	assert.InDelta(t, want, n, float64(time.Second))
}

func TestSteadyTimeNow_Monotonic(t *testing.T) {
	first, err := SteadyTimeNow()
	require.NoError(t, err)
	second, err := SteadyTimeNow()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, second, first)
}

func TestDifferenceTimes_SignFollowsOrdering(t *testing.T) {
	start := TimePoint{Nanos: 100, Kind: System}
	finish := TimePoint{Nanos: 150, Kind: System}
	d, err := DifferenceTimes(start, finish)
	require.NoError(t, err)
	assert.Equal(t, Duration(50), d)

	d, err = DifferenceTimes(finish, start)
	require.NoError(t, err)
	assert.Equal(t, Duration(-50), d)
}

func TestDifferenceTimes_MismatchedKinds(t *testing.T) {
	_, err := DifferenceTimes(TimePoint{Kind: System}, TimePoint{Kind: Steady})
	assert.Error(t, err)
}

func TestScenario4_ROSOverride(t *testing.T) {
	src, err := SourceInit(ROS)
	require.NoError(t, err)

	var preCount, postCount int
	var preOld, preNew, postOld, postNew TimePoint
	src.PreUpdate = func(old, new TimePoint) {
		preCount++
		preOld, preNew = old, new
	}
	src.PostUpdate = func(old, new TimePoint) {
		postCount++
		postOld, postNew = old, new
	}

	enabled, err := IsEnabledOverride(&src)
	require.NoError(t, err)
	assert.False(t, enabled)

	now, err := src.Now()
	require.NoError(t, err)
	sysNow, err := SystemTimeNow()
	require.NoError(t, err)
	assert.InDelta(t, sysNow, now.Nanos, float64(time.Second))

	// set_override while disabled: no callbacks.
	require.NoError(t, SetOverride(&src, 1_000_000_000))
	assert.Equal(t, 0, preCount)
	assert.Equal(t, 0, postCount)
	now, err = src.Now()
	require.NoError(t, err)
	assert.NotEqual(t, int64(1_000_000_000), now.Nanos)

	// enable: no callbacks.
	require.NoError(t, EnableOverride(&src))
	assert.Equal(t, 0, preCount)
	assert.Equal(t, 0, postCount)

	// set_override while enabled: pre then post fire.
	require.NoError(t, SetOverride(&src, 2_000_000_000))
	assert.Equal(t, 1, preCount)
	assert.Equal(t, 1, postCount)
	assert.Equal(t, int64(1_000_000_000), preOld.Nanos)
	assert.Equal(t, int64(2_000_000_000), preNew.Nanos)
	assert.Equal(t, preOld, postOld)
	assert.Equal(t, preNew, postNew)

	now, err = src.Now()
	require.NoError(t, err)
	assert.Equal(t, int64(2_000_000_000), now.Nanos)

	// disable: back to system time.
	require.NoError(t, DisableOverride(&src))
	now, err = src.Now()
	require.NoError(t, err)
	sysNow, err = SystemTimeNow()
	require.NoError(t, err)
	assert.InDelta(t, sysNow, now.Nanos, float64(time.Second))
}

func TestTimePointInit(t *testing.T) {
	s, err := SourceInit(System)
	require.NoError(t, err)
	var tp TimePoint
	require.NoError(t, TimePointInit(&tp, &s))
	assert.Equal(t, System, tp.Kind)
	assert.NotZero(t, tp.Nanos)
}

func TestDefaultROSSource_IsSingleton(t *testing.T) {
	a := DefaultROSSource()
	b := DefaultROSSource()
	assert.Same(t, a, b)
}
