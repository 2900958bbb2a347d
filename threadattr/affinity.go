// Package threadattr implements the spec's thread-attribute set: a
// growable list of per-thread descriptors (scheduling policy, priority,
// name, core-affinity bitset), plus applying one descriptor to the
// calling OS thread.
package threadattr

import (
	"github.com/ros2/rcutils-go/allocator"
	"github.com/ros2/rcutils-go/container/bytearray"
	"github.com/ros2/rcutils-go/rcerror"
)

const bitsPerByte = 8

// CoreAffinity is a grow-on-set bitset, one bit per logical core, backed
// by container/bytearray the same way the spec's C struct backs its
// bitset with a plain uint8_t* buffer — byte-rounded capacity, grown via
// the allocator on demand.
type CoreAffinity struct {
	bytes bytearray.Array[byte]
}

// GetZeroInitializedCoreAffinity returns a zero-valued CoreAffinity: no
// bits represented, safe to Fini.
func GetZeroInitializedCoreAffinity() CoreAffinity {
	return CoreAffinity{}
}

// InitCoreAffinity constructs an empty CoreAffinity (core count 0) backed
// by alloc.
func InitCoreAffinity(alloc allocator.Allocator) (CoreAffinity, error) {
	return InitCoreAffinityWithCapacity(0, alloc)
}

// InitCoreAffinityWithCapacity constructs a CoreAffinity able to
// represent at least numCores logical cores, rounding the backing byte
// count up to whole bytes.
func InitCoreAffinityWithCapacity(numCores int, alloc allocator.Allocator) (CoreAffinity, error) {
	if numCores < 0 {
		return CoreAffinity{}, rcerror.New(rcerror.InvalidArgument, "num cores must not be negative")
	}
	byteCount := byteCountFor(numCores)
	arr, err := bytearray.Init[byte](byteCount, alloc)
	if err != nil {
		return CoreAffinity{}, err
	}
	return CoreAffinity{bytes: arr}, nil
}

func byteCountFor(bitCount int) int {
	return (bitCount + bitsPerByte - 1) / bitsPerByte
}

// Fini releases the bitset's storage. Idempotent.
func (c *CoreAffinity) Fini() {
	c.bytes.Fini()
}

// CoreCount returns the number of logical cores currently representable
// (byte capacity * 8), matching the spec's "capacity rounded up to a
// whole byte" contract.
func (c *CoreAffinity) CoreCount() int {
	return c.bytes.Capacity() * bitsPerByte
}

// Copy returns a deep, independently-owned copy of c, using alloc for the
// copy's storage.
func (c *CoreAffinity) Copy(alloc allocator.Allocator) (CoreAffinity, error) {
	dest, err := InitCoreAffinityWithCapacity(c.CoreCount(), alloc)
	if err != nil {
		return CoreAffinity{}, err
	}
	copy(dest.bytes.FullSlice(), c.bytes.FullSlice())
	return dest, nil
}

// Set marks core no as permitted, growing the bitset (to the smallest
// whole-byte size covering no) if it is not yet represented.
func (c *CoreAffinity) Set(no int) error {
	if no < 0 {
		return rcerror.New(rcerror.InvalidArgument, "core number must not be negative")
	}
	if no >= c.CoreCount() {
		if err := c.bytes.Resize(byteCountFor(no + 1)); err != nil {
			return err
		}
	}
	c.bytes.FullSlice()[no/bitsPerByte] |= 1 << uint(no%bitsPerByte)
	return nil
}

// Unset clears core no. Indices beyond the current capacity are already
// unset, so Unset is a no-op (not an error) for them.
func (c *CoreAffinity) Unset(no int) error {
	if no < 0 {
		return rcerror.New(rcerror.InvalidArgument, "core number must not be negative")
	}
	if no >= c.CoreCount() {
		return nil
	}
	c.bytes.FullSlice()[no/bitsPerByte] &^= 1 << uint(no%bitsPerByte)
	return nil
}

// Fill marks every core in [lo, hi] (inclusive) as permitted, growing the
// bitset to cover hi if needed.
func (c *CoreAffinity) Fill(lo, hi int) error {
	if lo < 0 || hi < lo {
		return rcerror.New(rcerror.InvalidArgument, "range bounds are invalid")
	}
	for no := lo; no <= hi; no++ {
		if err := c.Set(no); err != nil {
			return err
		}
	}
	return nil
}

// Clear unmarks every core in [lo, hi] (inclusive). Indices beyond the
// current capacity are silently skipped.
func (c *CoreAffinity) Clear(lo, hi int) error {
	if lo < 0 || hi < lo {
		return rcerror.New(rcerror.InvalidArgument, "range bounds are invalid")
	}
	for no := lo; no <= hi; no++ {
		if err := c.Unset(no); err != nil {
			return err
		}
	}
	return nil
}

// IsSet reports whether core no is marked as permitted. Indices beyond
// the current capacity report false.
func (c *CoreAffinity) IsSet(no int) bool {
	if no < 0 || no >= c.CoreCount() {
		return false
	}
	return c.bytes.FullSlice()[no/bitsPerByte]&(1<<uint(no%bitsPerByte)) != 0
}

// Cores returns the sorted list of logical core numbers currently marked
// as permitted. Used by Apply to build the platform affinity mask.
func (c *CoreAffinity) Cores() []int {
	var cores []int
	for no := 0; no < c.CoreCount(); no++ {
		if c.IsSet(no) {
			cores = append(cores, no)
		}
	}
	return cores
}
