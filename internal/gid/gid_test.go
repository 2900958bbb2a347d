package gid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent_StableWithinGoroutine(t *testing.T) {
	a := Current()
	b := Current()
	assert.Equal(t, a, b)
	assert.NotZero(t, a)
}

func TestCurrent_DistinctAcrossGoroutines(t *testing.T) {
	const n = 16
	ids := make([]uint64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range ids {
		i := i
		go func() {
			defer wg.Done()
			ids[i] = Current()
		}()
	}
	wg.Wait()

	seen := make(map[uint64]int, n)
	for _, id := range ids {
		assert.NotZero(t, id)
		seen[id]++
	}
	assert.Len(t, seen, n, "expected every concurrent goroutine to observe a distinct id")
}
