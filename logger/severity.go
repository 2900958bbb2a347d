package logger

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Severity is the logger's severity level.
type Severity int32

const (
	Debug Severity = iota
	Info
	Warn
	Error
	Fatal
)

// Unset marks a severity table entry as absent/unresolved.
const Unset Severity = 100

func (s Severity) String() string {
	switch s {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	case Unset:
		return "UNSET"
	default:
		return strconv.Itoa(int(s))
	}
}

// entry is a severity table slot; cached distinguishes resolver-written
// entries (evictable) from explicit user-set ones (never evicted by
// resolution, only by a later explicit Set).
type entry struct {
	value  Severity
	cached bool
}

// severityTable is the logger's hierarchical severity resolver. The
// default level is kept in an atomic.Int32 and read without holding mu;
// lookups in entries take mu's read lock, and caching a resolved value
// takes its write lock.
type severityTable struct {
	mu      sync.RWMutex
	entries map[string]entry
	def     atomic.Int32
}

func newSeverityTable() *severityTable {
	t := &severityTable{entries: map[string]entry{}}
	t.def.Store(int32(Info))
	return t
}

// Set installs sev as the user-set severity for name, purging any cached
// (not user-set) descendants. Setting the empty name updates the
// process default instead of creating a table entry, and purges every
// cached entry, since every name descends from the root.
func (t *severityTable) Set(name string, sev Severity) {
	if name == "" {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.def.Store(int32(sev))
		for k, e := range t.entries {
			if e.cached {
				delete(t.entries, k)
			}
		}
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[name] = entry{value: sev}

	prefix := name + "."
	for k, e := range t.entries {
		if e.cached && strings.HasPrefix(k, prefix) {
			delete(t.entries, k)
		}
	}
}

// Effective resolves the effective severity threshold for name, walking
// up the dotted hierarchy and falling back to the process default.
func (t *severityTable) Effective(name string) Severity {
	t.mu.RLock()
	if e, ok := t.entries[name]; ok {
		v := e.value
		t.mu.RUnlock()
		return v
	}
	t.mu.RUnlock()

	for n := name; n != ""; {
		idx := strings.LastIndexByte(n, '.')
		if idx < 0 {
			n = ""
		} else {
			n = n[:idx]
		}
		if n == "" {
			break
		}
		t.mu.RLock()
		e, ok := t.entries[n]
		t.mu.RUnlock()
		if ok {
			t.cacheResolved(name, e.value)
			return e.value
		}
	}

	def := Severity(t.def.Load())
	t.cacheResolved(name, def)
	return def
}

// cacheResolved records the resolved value for name as a cached (non
// user-set) entry, unless it is already present or the value is Unset.
func (t *severityTable) cacheResolved(name string, sev Severity) {
	if sev == Unset {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[name]; !ok {
		t.entries[name] = entry{value: sev, cached: true}
	}
}

// IsEnabledFor is the hot-path query: does sev meet or exceed name's
// effective threshold.
func (t *severityTable) IsEnabledFor(name string, sev Severity) bool {
	return sev >= t.Effective(name)
}

// Reset clears every table entry and resets the default to Info,
// matching shutdown's "frees the severity table" contract.
func (t *severityTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = map[string]entry{}
	t.def.Store(int32(Info))
}
