package hashmap

// This file provides the spec's two canonical key profiles: a
// null-terminated-string key (Go: just string) and an arbitrary byte blob
// (Go: []byte, compared and hashed by content).

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

func fnv1a(b []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

// StringHash is the bundled FNV-class string hasher.
func StringHash(key string) uint64 { return fnv1a([]byte(key)) }

// StringEqual is the bundled string comparator.
func StringEqual(a, b string) bool { return a == b }

// NewStringHashMap constructs a HashMap keyed by string, using the bundled
// hasher/comparator, matching the spec's "null-terminated string-by-
// pointer" canonical profile (Go strings make the pointer-vs-value
// distinction moot: content comparison is both correct and idiomatic).
func NewStringHashMap[V any](initialCapacity int) (HashMap[string, V], error) {
	return Init[string, V](initialCapacity, StringHash, StringEqual)
}

// BytesHash is the bundled byte-blob hasher.
func BytesHash(key []byte) uint64 { return fnv1a(key) }

// BytesEqual is the bundled byte-blob comparator.
func BytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NewBytesHashMap constructs a HashMap keyed by arbitrary byte blobs,
// matching the spec's "arbitrary byte blob" canonical profile.
func NewBytesHashMap[V any](initialCapacity int) (HashMap[string, V], error) {
	// keyed internally by string (Go's immutable, comparable, and
	// content-hashable byte-sequence type) rather than []byte, since []byte
	// keys would require a non-comparable bucket struct; callers pass
	// []byte via the BytesKey helper below (keys come back from iteration
	// as strings), so the blob semantics (content equality, independent
	// copies) are preserved.
	return Init[string, V](initialCapacity, StringHash, StringEqual)
}

// BytesKey converts a byte blob into the internal map key form used by
// NewBytesHashMap.
func BytesKey(b []byte) string { return string(b) }
