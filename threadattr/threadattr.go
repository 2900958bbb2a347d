package threadattr

import (
	"github.com/ros2/rcutils-go/allocator"
	"github.com/ros2/rcutils-go/rcerror"
)

// SchedulingPolicy mirrors the spec's scheduling-policy enumeration.
// Values are part of the wire contract with other_examples' unix.SCHED_*
// mapping in Apply and must not be renumbered.
type SchedulingPolicy int

const (
	SchedulingPolicyUnknown SchedulingPolicy = iota
	SchedulingPolicyFIFO
	SchedulingPolicyRR
	SchedulingPolicySporadic
	SchedulingPolicyOther
	SchedulingPolicyIdle
	SchedulingPolicyBatch
	SchedulingPolicyDeadline
)

func (p SchedulingPolicy) String() string {
	switch p {
	case SchedulingPolicyFIFO:
		return "FIFO"
	case SchedulingPolicyRR:
		return "RR"
	case SchedulingPolicySporadic:
		return "SPORADIC"
	case SchedulingPolicyOther:
		return "OTHER"
	case SchedulingPolicyIdle:
		return "IDLE"
	case SchedulingPolicyBatch:
		return "BATCH"
	case SchedulingPolicyDeadline:
		return "DEADLINE"
	default:
		return "UNKNOWN"
	}
}

// Attr is a single thread's configuration: scheduling policy, priority,
// a name, and a core-affinity bitset.
type Attr struct {
	SchedulingPolicy SchedulingPolicy
	CoreAffinity     CoreAffinity
	Priority         int
	Name             string
}

// Attrs is a growable list of Attr, doubling capacity on overflow
// (initial capacity 1 if empty), matching the spec's "Attribute set
// growth" rule. Init/InitWithCapacity also record the allocator every
// Attr's affinity is built with.
type Attrs struct {
	attributes []Attr
	alloc      allocator.Allocator
}

// GetZeroInitializedAttrs returns a zero-valued Attrs: no attributes, no
// allocator. Safe to Fini.
func GetZeroInitializedAttrs() Attrs {
	return Attrs{}
}

// Init constructs an empty Attrs backed by alloc.
func Init(alloc allocator.Allocator) (Attrs, error) {
	return InitWithCapacity(alloc, 0)
}

// InitWithCapacity constructs an empty Attrs with storage pre-reserved
// for capacity attributes.
func InitWithCapacity(alloc allocator.Allocator, capacity int) (Attrs, error) {
	if capacity < 0 {
		return Attrs{}, rcerror.New(rcerror.InvalidArgument, "capacity must not be negative")
	}
	if !allocator.IsValid(&alloc) {
		return Attrs{}, rcerror.New(rcerror.InvalidArgument, "invalid allocator")
	}
	return Attrs{attributes: make([]Attr, 0, capacity), alloc: alloc}, nil
}

// Fini releases the list's storage, including every attribute's affinity
// bitset. Idempotent.
func (a *Attrs) Fini() {
	for i := range a.attributes {
		a.attributes[i].CoreAffinity.Fini()
	}
	*a = Attrs{}
}

// NumAttributes returns the number of thread attributes currently held.
func (a *Attrs) NumAttributes() int { return len(a.attributes) }

// Attributes returns the underlying slice of attributes, valid until the
// next AddAttr or Fini call.
func (a *Attrs) Attributes() []Attr { return a.attributes }

// AddAttr appends a thread attribute, taking a deep copy of affinity (so
// the caller's CoreAffinity remains independently owned).
func (a *Attrs) AddAttr(policy SchedulingPolicy, affinity *CoreAffinity, priority int, name string) error {
	if !allocator.IsValid(&a.alloc) {
		return rcerror.New(rcerror.InvalidArgument, "invalid allocator")
	}
	var affinityCopy CoreAffinity
	if affinity != nil {
		copied, err := affinity.Copy(a.alloc)
		if err != nil {
			return err
		}
		affinityCopy = copied
	}
	if len(a.attributes) == cap(a.attributes) {
		newCap := 2 * cap(a.attributes)
		if newCap == 0 {
			newCap = 1
		}
		grown := make([]Attr, len(a.attributes), newCap)
		copy(grown, a.attributes)
		a.attributes = grown
	}
	a.attributes = append(a.attributes, Attr{
		SchedulingPolicy: policy,
		CoreAffinity:     affinityCopy,
		Priority:         priority,
		Name:             name,
	})
	return nil
}

// Copy returns a deep copy of a: every attribute's name and affinity
// bitset is independently owned by the result.
func (a *Attrs) Copy() (Attrs, error) {
	dest, err := InitWithCapacity(a.alloc, len(a.attributes))
	if err != nil {
		return Attrs{}, err
	}
	for i := range a.attributes {
		src := &a.attributes[i]
		if err := dest.AddAttr(src.SchedulingPolicy, &src.CoreAffinity, src.Priority, src.Name); err != nil {
			dest.Fini()
			return Attrs{}, err
		}
	}
	return dest, nil
}
