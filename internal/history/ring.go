// Package history stores completed command lines in a fixed-capacity
// ring for Up/Down recall. Entries persist until overwritten by ring
// wraparound; nothing is persisted across restarts.
package history

// DefaultSize is the recall depth used when none is configured.
const DefaultSize = 16

// Ring is a circular buffer of completed lines. The write index points
// at the next slot to overwrite; a separate recall cursor tracks
// position during backward/forward browsing and is independent of the
// write index.
type Ring struct {
	slots  []string
	filled []bool
	next   int // next slot to overwrite
	recall int // browsing position, -1 when not browsing
}

// NewRing creates a ring with the given capacity. Sizes below one fall
// back to DefaultSize.
func NewRing(size int) *Ring {
	if size < 1 {
		size = DefaultSize
	}
	return &Ring{
		slots:  make([]string, size),
		filled: make([]bool, size),
		recall: -1,
	}
}

// Size returns the ring capacity.
func (r *Ring) Size() int {
	return len(r.slots)
}

// Len returns the number of stored entries.
func (r *Ring) Len() int {
	n := 0
	for _, f := range r.filled {
		if f {
			n++
		}
	}
	return n
}

// Push stores a completed line, overwriting the oldest entry once the
// ring is full. Empty lines are not stored. Push ends any recall in
// progress.
func (r *Ring) Push(line string) {
	r.recall = -1
	if line == "" {
		return
	}
	r.slots[r.next] = line
	r.filled[r.next] = true
	r.next = (r.next + 1) % len(r.slots)
}

// Previous steps the recall cursor one entry back and returns that
// line. The first call starts at the most recent entry. It returns
// false when no older entry exists; the cursor does not move past that
// boundary.
func (r *Ring) Previous() (string, bool) {
	var candidate int
	if r.recall < 0 {
		candidate = r.prev(r.next)
	} else {
		candidate = r.prev(r.recall)
		if candidate == r.prev(r.next) {
			// Wrapped all the way around.
			return "", false
		}
	}
	if !r.filled[candidate] {
		return "", false
	}
	r.recall = candidate
	return r.slots[candidate], true
}

// Next steps the recall cursor one entry forward and returns that
// line. It returns false when no recall is in progress or when the
// cursor sits at the most recent entry: the slot ahead of it is the
// write slot, which represents the fresh line being edited, not a
// stored entry.
func (r *Ring) Next() (string, bool) {
	if r.recall < 0 {
		return "", false
	}
	candidate := (r.recall + 1) % len(r.slots)
	if candidate == r.next {
		return "", false
	}
	if !r.filled[candidate] {
		return "", false
	}
	r.recall = candidate
	return r.slots[candidate], true
}

// Browsing returns true while a recall traversal is in progress.
func (r *Ring) Browsing() bool {
	return r.recall >= 0
}

// ResetRecall ends any recall in progress. Called whenever a line is
// completed or aborted.
func (r *Ring) ResetRecall() {
	r.recall = -1
}

func (r *Ring) prev(i int) int {
	return (i - 1 + len(r.slots)) % len(r.slots)
}
