package rcerror

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetErrorString_UnsetIsLiteral(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "error not set", GetErrorString())
	assert.False(t, IsSet())
	assert.Nil(t, GetErrorState())
}

func TestSetError_RoundTrip(t *testing.T) {
	t.Parallel()
	SetError("bad", "a.c", 10)
	defer Reset()

	assert.True(t, IsSet())
	assert.Equal(t, "bad, at a.c:10", GetErrorString())

	st := GetErrorState()
	require.NotNil(t, st)
	assert.Equal(t, "bad", st.Message)
	assert.Equal(t, "a.c", st.File)
	assert.EqualValues(t, 10, st.Line)
}

func TestSetError_Chained(t *testing.T) {
	t.Parallel()
	SetError("bad", "a.c", 10)
	defer Reset()
	assert.Equal(t, "bad, at a.c:10", GetErrorString())

	SetError(GetErrorString(), "b.c", 20)
	assert.Equal(t, "bad, at a.c:10, at b.c:20", GetErrorString())
}

func TestSetError_MessageTruncation(t *testing.T) {
	t.Parallel()
	long := make([]byte, MessageMax+1)
	for i := range long {
		long[i] = 'x'
	}
	SetError(string(long), "f", 1)
	defer Reset()

	st := GetErrorState()
	require.NotNil(t, st)
	assert.Len(t, st.Message, MessageMax)

	exact := make([]byte, MessageMax)
	for i := range exact {
		exact[i] = 'y'
	}
	SetError(string(exact), "f", 1)
	st = GetErrorState()
	require.NotNil(t, st)
	assert.Len(t, st.Message, MessageMax)
	assert.Equal(t, string(exact), st.Message)
}

func TestSetError_FileTruncationKeepsTail(t *testing.T) {
	t.Parallel()
	long := "/very/long/path/" + string(make([]byte, PathMax*2))
	SetError("m", long, 1)
	defer Reset()

	st := GetErrorState()
	require.NotNil(t, st)
	assert.LessOrEqual(t, len(st.File), PathMax)
	assert.True(t, len(st.File) >= 3 && st.File[:3] == "...")
	assert.Equal(t, long[len(long)-(len(st.File)-3):], st.File[3:])
}

func TestReset(t *testing.T) {
	t.Parallel()
	SetError("bad", "a.c", 10)
	assert.True(t, IsSet())
	Reset()
	assert.False(t, IsSet())
	assert.Equal(t, "error not set", GetErrorString())
}

func TestSetErrorf(t *testing.T) {
	t.Parallel()
	SetErrorf("f.c", 5, "bad %d thing", 42)
	defer Reset()
	assert.Equal(t, "bad 42 thing, at f.c:5", GetErrorString())
}

func TestSetErrorf_BadVerbLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	Reset()
	SetErrorf("f.c", 5, "bad %d thing", "not-a-number")
	assert.False(t, IsSet())
}

func TestPerGoroutineIsolation(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer Reset()
			SetErrorf("f.c", int64(i), "err-%d", i)
			results[i] = GetErrorString()
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		assert.Contains(t, r, "err-")
		_ = i
	}
}

func TestRequireNonNil(t *testing.T) {
	t.Parallel()
	defer Reset()
	err := RequireNonNil("foo", true, "f.c", 1)
	require.Error(t, err)
	assert.Equal(t, InvalidArgument, CodeOf(err))

	err = RequireNonNil("foo", false, "f.c", 1)
	assert.NoError(t, err)
}

func TestIfNil(t *testing.T) {
	t.Parallel()
	var called bool
	IfNil(true, func() { called = true })
	assert.True(t, called)

	called = false
	IfNil(false, func() { called = true })
	assert.False(t, called)
}
