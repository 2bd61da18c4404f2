package runner

import "strings"

// DefaultBufferLimit bounds how many output lines a run retains. Noisy or
// long-running processes evict their oldest lines instead of growing
// without bound.
const DefaultBufferLimit = 5000

// OutputBuffer is an append-only, bounded sequence of output lines.
type OutputBuffer struct {
	lines   []string
	limit   int
	evicted int
}

// NewOutputBuffer returns a buffer retaining at most limit lines.
// A non-positive limit selects DefaultBufferLimit.
func NewOutputBuffer(limit int) *OutputBuffer {
	if limit <= 0 {
		limit = DefaultBufferLimit
	}
	return &OutputBuffer{limit: limit}
}

// Append adds one line, evicting the oldest when full.
func (b *OutputBuffer) Append(line string) {
	if len(b.lines) >= b.limit {
		n := copy(b.lines, b.lines[1:])
		b.lines = b.lines[:n]
		b.evicted++
	}
	b.lines = append(b.lines, line)
}

// Len returns the number of retained lines.
func (b *OutputBuffer) Len() int {
	return len(b.lines)
}

// Evicted returns how many lines have been dropped so far.
func (b *OutputBuffer) Evicted() int {
	return b.evicted
}

// Lines returns the retained lines in arrival order. The slice is shared;
// callers must not mutate it.
func (b *OutputBuffer) Lines() []string {
	return b.lines
}

// String joins the retained lines with newlines.
func (b *OutputBuffer) String() string {
	return strings.Join(b.lines, "\n")
}
