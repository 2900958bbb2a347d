//go:build linux

package threadattr

import (
	"golang.org/x/sys/unix"

	"github.com/ros2/rcutils-go/rcerror"
)

// schedPolicyNo maps SchedulingPolicy onto the unix.SCHED_* constants
// Linux actually exposes; SPORADIC and DEADLINE have no stable
// golang.org/x/sys/unix constant (SCHED_DEADLINE support varies by
// kernel/glibc version), so Apply reports InvalidArgument for them
// rather than guessing a raw syscall number.
func schedPolicyNo(p SchedulingPolicy) (int, bool) {
	switch p {
	case SchedulingPolicyFIFO:
		return unix.SCHED_FIFO, true
	case SchedulingPolicyRR:
		return unix.SCHED_RR, true
	case SchedulingPolicyOther:
		return unix.SCHED_OTHER, true
	case SchedulingPolicyIdle:
		return unix.SCHED_IDLE, true
	case SchedulingPolicyBatch:
		return unix.SCHED_BATCH, true
	default:
		return 0, false
	}
}

// Apply sets the calling OS thread's CPU affinity and scheduling policy
// and priority to those described by attr. Callers must runtime.LockOSThread
// before calling Apply, the same precondition the grounding
// reference (other_examples' go-ublk queue runner) documents for its own
// affinity-setting call, since these attributes are per-OS-thread, not
// per-goroutine.
func (attr *Attr) Apply() error {
	cores := attr.CoreAffinity.Cores()
	if len(cores) > 0 {
		var mask unix.CPUSet
		mask.Zero()
		for _, core := range cores {
			mask.Set(core)
		}
		if err := unix.SchedSetaffinity(0, &mask); err != nil {
			return rcerror.Newf(rcerror.Error, "set affinity: %v", err)
		}
	}

	if attr.SchedulingPolicy == SchedulingPolicyUnknown {
		return nil
	}
	policyNo, ok := schedPolicyNo(attr.SchedulingPolicy)
	if !ok {
		return rcerror.New(rcerror.InvalidArgument, "unsupported scheduling policy on this platform")
	}
	param := unix.SchedParam{Priority: int32(attr.Priority)}
	if err := unix.SchedSetscheduler(0, policyNo, &param); err != nil {
		return rcerror.Newf(rcerror.Error, "set scheduler: %v", err)
	}
	return nil
}
