// Package stringmap implements the spec's open-addressed string-to-string
// map: capacity distinct from size, doubling growth only when completely
// full, pointer-identity iteration, and duplicate-key overwrite.
package stringmap

import "github.com/ros2/rcutils-go/rcerror"

type entry struct {
	key, value string
}

// Map is a dense, open-addressed mapping from string keys to string values.
type Map struct {
	table []*entry
	size  int
}

// Init constructs a Map with the given initial capacity.
func Init(capacity int) (Map, error) {
	if capacity < 0 {
		return Map{}, rcerror.New(rcerror.InvalidArgument, "capacity must not be negative")
	}
	m := Map{}
	if capacity > 0 {
		m.table = make([]*entry, capacity)
	}
	return m, nil
}

// Fini releases the map's storage. Idempotent.
func (m *Map) Fini() {
	m.table = nil
	m.size = 0
}

// GetCapacity returns the current table capacity.
func (m *Map) GetCapacity() int { return len(m.table) }

// GetSize returns the number of stored entries.
func (m *Map) GetSize() int { return m.size }

func hashKey(key string) uint64 {
	// FNV-1a, matching the "FNV-class is acceptable" guidance for the
	// bundled string hasher used across this module's containers.
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= prime64
	}
	return h
}

// findSlot returns the index of key's slot if present (found=true), or the
// first empty slot where it could be inserted (found=false). cap must be
// > 0.
func findSlot(table []*entry, key string) (index int, found bool) {
	n := len(table)
	start := int(hashKey(key) % uint64(n))
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		e := table[idx]
		if e == nil {
			return idx, false
		}
		if e.key == key {
			return idx, true
		}
	}
	// table full of non-matching entries; caller must have ensured room.
	return -1, false
}

// Reserve grows or shrinks the table to newCapacity. A request smaller
// than the current size is silently clamped up to size. Reserve(0) is
// permitted only when size == 0, and frees the underlying storage.
func (m *Map) Reserve(newCapacity int) error {
	if newCapacity < 0 {
		return rcerror.New(rcerror.InvalidArgument, "capacity must not be negative")
	}
	if newCapacity < m.size {
		newCapacity = m.size
	}
	if newCapacity == 0 {
		m.table = nil
		return nil
	}
	newTable := make([]*entry, newCapacity)
	for _, e := range m.table {
		if e == nil {
			continue
		}
		idx, _ := findSlot(newTable, e.key)
		newTable[idx] = e
	}
	m.table = newTable
	return nil
}

// Clear removes all entries without changing capacity.
func (m *Map) Clear() {
	for i := range m.table {
		m.table[i] = nil
	}
	m.size = 0
}

func (m *Map) growIfFull() error {
	if m.size < len(m.table) {
		return nil
	}
	newCap := len(m.table) * 2
	if newCap == 0 {
		newCap = 1
	}
	return m.Reserve(newCap)
}

// Set stores value for key, growing the table (doubling, 1 if starting
// from 0) if it is completely full. Overwrites an existing key in place
// without growing or changing size.
func (m *Map) Set(key, value string) error {
	if len(m.table) > 0 {
		if idx, found := findSlot(m.table, key); found {
			m.table[idx].value = value
			return nil
		}
	}
	if err := m.growIfFull(); err != nil {
		return err
	}
	idx, found := findSlot(m.table, key)
	if found {
		m.table[idx].value = value
		return nil
	}
	m.table[idx] = &entry{key: key, value: value}
	m.size++
	return nil
}

// SetNoResize is Set, but fails with NotEnoughSpace instead of growing
// when the table is completely full and key is not already present.
func (m *Map) SetNoResize(key, value string) error {
	if len(m.table) > 0 {
		if idx, found := findSlot(m.table, key); found {
			m.table[idx].value = value
			return nil
		}
	}
	if m.size >= len(m.table) {
		return rcerror.New(rcerror.NotEnoughSpace, "")
	}
	idx, _ := findSlot(m.table, key)
	m.table[idx] = &entry{key: key, value: value}
	m.size++
	return nil
}

// Unset removes key, returning KeyNotFound if it is absent.
//
// Deletion uses the classic linear-probing backward-shift algorithm: the
// cluster following the deleted slot is walked and any entry that could
// now be found earlier is moved back, so subsequent lookups remain
// correct without tombstones.
func (m *Map) Unset(key string) error {
	if len(m.table) == 0 {
		return rcerror.New(rcerror.KeyNotFound, "")
	}
	idx, found := findSlot(m.table, key)
	if !found {
		return rcerror.New(rcerror.KeyNotFound, "")
	}
	n := len(m.table)
	m.table[idx] = nil
	m.size--

	j := idx
	for {
		j = (j + 1) % n
		e := m.table[j]
		if e == nil {
			break
		}
		home := int(hashKey(e.key) % uint64(n))
		// if home slot is not "between" idx (exclusive) and j (inclusive)
		// in probe order, this entry can move back to idx.
		if probeDistanceOK(idx, j, home, n) {
			m.table[idx] = e
			m.table[j] = nil
			idx = j
		}
	}
	return nil
}

// probeDistanceOK reports whether an entry whose ideal slot is home, and
// which currently sits at j, may be relocated to the now-empty slot hole
// without breaking probe-sequence lookups.
func probeDistanceOK(hole, j, home, n int) bool {
	// distance from home to hole, and home to j, going forward (mod n).
	distHole := (hole - home + n) % n
	distJ := (j - home + n) % n
	return distHole <= distJ
}

// Get returns the value for key, and whether it was present.
func (m *Map) Get(key string) (string, bool) {
	if len(m.table) == 0 {
		return "", false
	}
	idx, found := findSlot(m.table, key)
	if !found {
		return "", false
	}
	return m.table[idx].value, true
}

// NextKey returns the key following prevKey in slot iteration order, where
// prevKey == nil means "first". It returns (nil, false) when iteration is
// exhausted. The returned pointer's identity is stable until the next
// mutation.
func (m *Map) NextKey(prevKey *string) (*string, bool) {
	start := 0
	if prevKey != nil {
		found := false
		for i, e := range m.table {
			if e != nil && &e.key == prevKey {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	for i := start; i < len(m.table); i++ {
		if m.table[i] != nil {
			return &m.table[i].key, true
		}
	}
	return nil, false
}

// Copy replaces dst's contents with an independent copy of src's.
func Copy(src *Map, dst *Map) error {
	newTable := make([]*entry, len(src.table))
	for i, e := range src.table {
		if e == nil {
			continue
		}
		cp := *e
		newTable[i] = &cp
	}
	dst.table = newTable
	dst.size = src.size
	return nil
}
