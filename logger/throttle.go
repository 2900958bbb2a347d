package logger

import (
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
)

// callSiteState holds the per-call-site bookkeeping the macro families
// need: "fired once already", "skipped the first occurrence", and a
// lazily-built rate limiter for the THROTTLE variants. One instance is
// kept per distinct call site key, isolated from every other site, per
// spec.md §4.8 ("per-call-site state ... is isolated per call site").
type callSiteState struct {
	mu            sync.Mutex
	onceFired     bool
	skipFirstSeen bool
	limiter       *catrate.Limiter
	limiterPeriod time.Duration
}

var (
	callSitesMu sync.Mutex
	callSites   = map[string]*callSiteState{}
)

func callSiteFor(key string) *callSiteState {
	callSitesMu.Lock()
	defer callSitesMu.Unlock()
	cs, ok := callSites[key]
	if !ok {
		cs = &callSiteState{}
		callSites[key] = cs
	}
	return cs
}

// resetCallSites clears all per-call-site state, used by tests and by
// Shutdown to avoid leaking state across Initialize/Shutdown cycles.
func resetCallSites() {
	callSitesMu.Lock()
	defer callSitesMu.Unlock()
	callSites = map[string]*callSiteState{}
}

// once reports whether this is the first call at the site; subsequent
// calls return false forever.
func (cs *callSiteState) once() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.onceFired {
		return false
	}
	cs.onceFired = true
	return true
}

// skipFirst reports whether this call should fire: the first call at
// the site is skipped, every subsequent one fires.
func (cs *callSiteState) skipFirst() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.skipFirstSeen {
		cs.skipFirstSeen = true
		return false
	}
	return true
}

// skipFirstSeenAndThrottle combines skipFirst and throttle: the first
// call at the site never fires, and every call thereafter is further
// subject to the period throttle.
func (cs *callSiteState) skipFirstSeenAndThrottle(period time.Duration) bool {
	if !cs.skipFirst() {
		return false
	}
	return cs.throttle(period)
}

// throttle reports whether this call falls outside the given period
// since the site's last allowed emission, backed by a single
// catrate.Limiter per call site (grounded on go-catrate's category rate
// limiter, one category per call site, one {period: 1} window).
func (cs *callSiteState) throttle(period time.Duration) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.limiter == nil || cs.limiterPeriod != period {
		cs.limiter = catrate.NewLimiter(map[time.Duration]int{period: 1})
		cs.limiterPeriod = period
	}
	_, ok := cs.limiter.Allow(struct{}{})
	return ok
}
