package dirty

// Flush writes the touched pages of a shared mapping back to its file and
// clears the tracker. data must be the whole mapping, starting at the arena
// base, and the tracker page size must match the OS page size.
func (t *Tracker) Flush(data []byte) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if err := t.flushRanges(data); err != nil {
		return err
	}
	t.Reset()
	return nil
}
