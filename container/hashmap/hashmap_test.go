package hashmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ros2/rcutils-go/rcerror"
)

func TestSetGetUnset_RoundTrip(t *testing.T) {
	m, err := NewStringHashMap[int](0)
	require.NoError(t, err)
	defer m.Fini()

	require.NoError(t, m.Set("a", 1))
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	require.NoError(t, m.Set("a", 2))
	v, ok = m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.GetSize())

	require.NoError(t, m.Unset("a"))
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.GetSize())
}

func TestUnset_KeyNotFound(t *testing.T) {
	m, err := NewStringHashMap[int](0)
	require.NoError(t, err)
	defer m.Fini()
	err = m.Unset("missing")
	require.Error(t, err)
	assert.Equal(t, rcerror.KeyNotFound, rcerror.CodeOf(err))
}

func TestGrowthUnderLoadFactor(t *testing.T) {
	m, err := NewStringHashMap[int](1)
	require.NoError(t, err)
	defer m.Fini()

	for i := 0; i < 100; i++ {
		require.NoError(t, m.Set(string(rune('a'+i%26))+string(rune('0'+i/26)), i))
	}
	assert.Equal(t, 100, m.GetSize())
	assert.LessOrEqual(t, float64(m.GetSize()), maxLoadFactor*float64(m.GetCapacity()))

	for i := 0; i < 100; i++ {
		key := string(rune('a'+i%26)) + string(rune('0'+i/26))
		v, ok := m.Get(key)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestNextKeyAndData_CoversAllEntries(t *testing.T) {
	m, err := NewStringHashMap[int](0)
	require.NoError(t, err)
	defer m.Fini()

	want := map[string]int{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		require.NoError(t, m.Set(k, v))
	}

	got := map[string]int{}
	var c Cursor
	for {
		k, v, next, err := m.NextKeyAndData(c)
		if err != nil {
			assert.ErrorIs(t, err, ErrNoMoreEntries)
			break
		}
		got[k] = v
		c = next
	}
	assert.Equal(t, want, got)
}

func TestBytesProfile(t *testing.T) {
	m, err := NewBytesHashMap[string](0)
	require.NoError(t, err)
	defer m.Fini()

	require.NoError(t, m.Set(BytesKey([]byte{1, 2, 3}), "payload"))
	v, ok := m.Get(BytesKey([]byte{1, 2, 3}))
	require.True(t, ok)
	assert.Equal(t, "payload", v)
}

func TestInit_RequiresHashAndEqual(t *testing.T) {
	_, err := Init[string, int](0, nil, StringEqual)
	assert.Error(t, err)
	_, err = Init[string, int](0, StringHash, nil)
	assert.Error(t, err)
}

func TestBytesEqual(t *testing.T) {
	assert.True(t, BytesEqual([]byte("abc"), []byte("abc")))
	assert.False(t, BytesEqual([]byte("abc"), []byte("abd")))
	assert.False(t, BytesEqual([]byte("abc"), []byte("ab")))
}
