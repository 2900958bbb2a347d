package threadattr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ros2/rcutils-go/allocator"
)

func TestAttrs_InitWithoutCapacity(t *testing.T) {
	attrs, err := Init(allocator.DefaultAllocator())
	require.NoError(t, err)
	defer attrs.Fini()

	assert.Equal(t, 0, attrs.NumAttributes())
}

func TestAttrs_AddAttr(t *testing.T) {
	attrs, err := Init(allocator.DefaultAllocator())
	require.NoError(t, err)
	defer attrs.Fini()

	aff, err := InitCoreAffinity(allocator.DefaultAllocator())
	require.NoError(t, err)
	defer aff.Fini()
	require.NoError(t, aff.Set(0xaa))

	for i := 0; i < 100; i++ {
		require.NoError(t, attrs.AddAttr(SchedulingPolicyFIFO, &aff, 0xbb, "attr"))
	}
	assert.Equal(t, 100, attrs.NumAttributes())

	for _, attr := range attrs.Attributes() {
		assert.Equal(t, SchedulingPolicyFIFO, attr.SchedulingPolicy)
		assert.Equal(t, 0xbb, attr.Priority)
		assert.Equal(t, "attr", attr.Name)
		assert.Equal(t, aff.CoreCount(), attr.CoreAffinity.CoreCount())
		assert.True(t, attr.CoreAffinity.IsSet(0xaa))
	}
}

func TestAttrs_AddAttrCopiesAffinityIndependently(t *testing.T) {
	attrs, err := Init(allocator.DefaultAllocator())
	require.NoError(t, err)
	defer attrs.Fini()

	aff, err := InitCoreAffinity(allocator.DefaultAllocator())
	require.NoError(t, err)
	defer aff.Fini()
	require.NoError(t, aff.Set(0))

	require.NoError(t, attrs.AddAttr(SchedulingPolicyOther, &aff, 0, "t"))

	require.NoError(t, aff.Set(5))
	assert.False(t, attrs.Attributes()[0].CoreAffinity.IsSet(5))
}

func TestAttrs_Copy(t *testing.T) {
	attrs, err := Init(allocator.DefaultAllocator())
	require.NoError(t, err)
	defer attrs.Fini()

	aff, err := InitCoreAffinity(allocator.DefaultAllocator())
	require.NoError(t, err)
	defer aff.Fini()
	require.NoError(t, aff.Set(0xaa))

	for i := 0; i < 10; i++ {
		require.NoError(t, attrs.AddAttr(SchedulingPolicyFIFO, &aff, 0xbb, "attr"))
	}

	dup, err := attrs.Copy()
	require.NoError(t, err)
	defer dup.Fini()

	assert.Equal(t, attrs.NumAttributes(), dup.NumAttributes())
	for i, attr := range dup.Attributes() {
		assert.Equal(t, attrs.Attributes()[i].SchedulingPolicy, attr.SchedulingPolicy)
		assert.Equal(t, attrs.Attributes()[i].Priority, attr.Priority)
		assert.Equal(t, attrs.Attributes()[i].Name, attr.Name)
	}
}

func TestSchedulingPolicy_String(t *testing.T) {
	assert.Equal(t, "FIFO", SchedulingPolicyFIFO.String())
	assert.Equal(t, "DEADLINE", SchedulingPolicyDeadline.String())
	assert.Equal(t, "UNKNOWN", SchedulingPolicyUnknown.String())
}
