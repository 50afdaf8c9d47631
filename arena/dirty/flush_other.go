//go:build !linux && !freebsd && !darwin

package dirty

// flushRanges is a no-op where shared file mappings are not supported.
func (t *Tracker) flushRanges(_ []byte) error {
	return nil
}
