package bufferlayout

// Layout maps "@<offset>" to the distance from that offset to the next
// distinct offset. The largest offset has no entry.
//
// Layout is a plain map: iteration order is undefined and callers must not
// rely on it.
type Layout map[string]int64

// Distance returns the gap following offset, if offset is a buffer start
// that has a successor.
func (l Layout) Distance(offset int64) (int64, bool) {
	d, ok := l[Key(offset)]
	return d, ok
}

// Exceeds reports whether writing size bytes at the buffer starting at
// offset reaches into the next buffer. Offsets without an entry never
// exceed: their extent is unknown.
func (l Layout) Exceeds(offset, size int64) bool {
	d, ok := l.Distance(offset)
	return ok && size >= d
}

// Span returns the sum of all distances, which equals the largest offset
// minus the smallest. The sum wraps if that range does not fit in int64.
func (l Layout) Span() int64 {
	var total int64
	for _, d := range l {
		total += d
	}
	return total
}
