//go:build !linux

package threadattr

// Apply is a no-op on platforms other than Linux: thread affinity and
// real-time scheduling priority have no portable cross-platform API, so
// the bitset/attribute-list bookkeeping above still works identically,
// but applying it to the OS scheduler has no effect here.
func (attr *Attr) Apply() error {
	return nil
}
