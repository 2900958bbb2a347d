// Package hashmap implements the spec's generic hash map: open addressing
// with linear probing, power-of-two capacity, rehash at load factor 0.75,
// parameterized by caller-supplied hash and compare functions.
//
// Go's type system removes the need for the original's void-pointer,
// explicit-key-size storage: HashMap is generic over K and V directly (see
// SPEC_FULL.md §4, "supplemented features").
package hashmap

import "github.com/ros2/rcutils-go/rcerror"

type (
	// HashFunc computes a hash for a key.
	HashFunc[K any] func(key K) uint64
	// CompareFunc reports whether a and b are equal keys.
	CompareFunc[K any] func(a, b K) bool

	bucket[K any, V any] struct {
		key   K
		value V
		used  bool
	}

	// HashMap is a generic, open-addressed K->V map.
	HashMap[K any, V any] struct {
		buckets []bucket[K, V]
		size    int
		hash    HashFunc[K]
		equal   CompareFunc[K]
	}
)

const maxLoadFactor = 0.75

// Init constructs a HashMap with the given initial capacity (rounded up to
// the next power of two, minimum 1), hash and compare functions.
func Init[K any, V any](initialCapacity int, hash HashFunc[K], equal CompareFunc[K]) (HashMap[K, V], error) {
	if initialCapacity < 0 {
		return HashMap[K, V]{}, rcerror.New(rcerror.InvalidArgument, "initial capacity must not be negative")
	}
	if hash == nil || equal == nil {
		return HashMap[K, V]{}, rcerror.New(rcerror.InvalidArgument, "hash and equal must not be nil")
	}
	cap := nextPowerOfTwo(initialCapacity)
	if cap == 0 {
		cap = 1
	}
	return HashMap[K, V]{
		buckets: make([]bucket[K, V], cap),
		hash:    hash,
		equal:   equal,
	}, nil
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Fini releases the map's storage. Idempotent.
func (m *HashMap[K, V]) Fini() {
	m.buckets = nil
	m.size = 0
}

// GetCapacity returns the current bucket-array size.
func (m *HashMap[K, V]) GetCapacity() int { return len(m.buckets) }

// GetSize returns the number of stored entries.
func (m *HashMap[K, V]) GetSize() int { return m.size }

func (m *HashMap[K, V]) findSlot(key K) (index int, found bool) {
	n := len(m.buckets)
	if n == 0 {
		return -1, false
	}
	start := int(m.hash(key) % uint64(n))
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		b := &m.buckets[idx]
		if !b.used {
			return idx, false
		}
		if m.equal(b.key, key) {
			return idx, true
		}
	}
	return -1, false
}

// rehash grows the table to newCap (which must be a power of two and
// large enough to hold the current size under the load factor). The new
// table is allocated before m is touched, so an allocator failure leaves
// the old table intact (the spec's "BAD_ALLOC leaves old table intact"
// rule, realized here via Go's own allocation failure model, which panics
// rather than returning nil); reinsertion after that point allocates
// nothing.
func (m *HashMap[K, V]) rehash(newCap int) {
	newBuckets := make([]bucket[K, V], newCap)
	old := m.buckets
	m.buckets = newBuckets
	for _, b := range old {
		if !b.used {
			continue
		}
		idx, _ := m.findSlot(b.key)
		m.buckets[idx] = b
	}
}

func (m *HashMap[K, V]) growIfNeeded() {
	if len(m.buckets) == 0 {
		m.rehash(1)
		return
	}
	if float64(m.size+1) >= maxLoadFactor*float64(len(m.buckets)) {
		m.rehash(len(m.buckets) * 2)
	}
}

// Set stores value for key, growing the table if the load factor would be
// exceeded.
func (m *HashMap[K, V]) Set(key K, value V) error {
	if idx, found := m.findSlot(key); found {
		m.buckets[idx].value = value
		return nil
	}
	m.growIfNeeded()
	idx, found := m.findSlot(key)
	if found {
		m.buckets[idx].value = value
		return nil
	}
	m.buckets[idx] = bucket[K, V]{key: key, value: value, used: true}
	m.size++
	return nil
}

// Get returns the value for key, and whether it was present.
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	var zero V
	idx, found := m.findSlot(key)
	if !found {
		return zero, false
	}
	return m.buckets[idx].value, true
}

// Unset removes key, returning KeyNotFound if it is absent.
func (m *HashMap[K, V]) Unset(key K) error {
	idx, found := m.findSlot(key)
	if !found {
		return rcerror.New(rcerror.KeyNotFound, "")
	}
	n := len(m.buckets)
	m.buckets[idx] = bucket[K, V]{}
	m.size--

	j := idx
	for {
		j = (j + 1) % n
		b := m.buckets[j]
		if !b.used {
			break
		}
		home := int(m.hash(b.key) % uint64(n))
		distHole := (idx - home + n) % n
		distJ := (j - home + n) % n
		if distHole <= distJ {
			m.buckets[idx] = b
			m.buckets[j] = bucket[K, V]{}
			idx = j
		}
	}
	return nil
}

// Cursor is an iteration handle returned by NextKeyAndData; its zero value
// means "start from the beginning".
type Cursor struct {
	index int
	valid bool
}

// ErrNoMoreEntries is returned by NextKeyAndData once iteration is
// exhausted.
var ErrNoMoreEntries = rcerror.New(rcerror.HashMapNoMoreEntries, "")

// NextKeyAndData yields successive (key, value) pairs by copy, in bucket
// order. Pass the zero Cursor to begin. Mutating the map invalidates any
// outstanding Cursor.
func (m *HashMap[K, V]) NextKeyAndData(c Cursor) (K, V, Cursor, error) {
	var zeroK K
	var zeroV V
	start := 0
	if c.valid {
		start = c.index + 1
	}
	for i := start; i < len(m.buckets); i++ {
		if m.buckets[i].used {
			return m.buckets[i].key, m.buckets[i].value, Cursor{index: i, valid: true}, nil
		}
	}
	return zeroK, zeroV, c, ErrNoMoreEntries
}
