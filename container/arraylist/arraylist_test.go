package arraylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGetSet(t *testing.T) {
	l, err := Init[int](0)
	require.NoError(t, err)
	defer l.Fini()

	l.Add(1)
	l.Add(2)
	l.Add(3)
	assert.Equal(t, 3, l.Size())

	v, err := l.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	require.NoError(t, l.Set(1, 99))
	v, err = l.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 99, v)
}

func TestRemove_ShiftsTail(t *testing.T) {
	l, err := Init[int](0)
	require.NoError(t, err)
	defer l.Fini()

	for i := 0; i < 5; i++ {
		l.Add(i)
	}
	require.NoError(t, l.Remove(1))
	assert.Equal(t, 4, l.Size())
	for i, want := range []int{0, 2, 3, 4} {
		v, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestOutOfRange(t *testing.T) {
	l, err := Init[int](0)
	require.NoError(t, err)
	defer l.Fini()

	_, err = l.Get(0)
	assert.Error(t, err)
	err = l.Set(0, 1)
	assert.Error(t, err)
	err = l.Remove(0)
	assert.Error(t, err)
}

func TestInit_NegativeCapacity(t *testing.T) {
	_, err := Init[int](-1)
	assert.Error(t, err)
}
