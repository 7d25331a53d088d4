package editor

// DefaultAccumulatorSize bounds the output collected per processed
// character when the caller supplies no sink of its own.
const DefaultAccumulatorSize = 256

// Accumulator is a fixed-capacity byte sink. Once full, further writes
// are silently dropped; callers are responsible for draining before
// capacity is exceeded. It implements both io.ByteWriter and io.Writer.
type Accumulator struct {
	buf []byte
}

// NewAccumulator creates an accumulator holding at most size bytes.
// Sizes below one fall back to DefaultAccumulatorSize.
func NewAccumulator(size int) *Accumulator {
	if size < 1 {
		size = DefaultAccumulatorSize
	}
	return &Accumulator{buf: make([]byte, 0, size)}
}

// WriteByte appends one byte, dropping it when the accumulator is
// full. It never returns an error.
func (a *Accumulator) WriteByte(c byte) error {
	if len(a.buf) < cap(a.buf) {
		a.buf = append(a.buf, c)
	}
	return nil
}

// Write appends p, dropping whatever does not fit. The reported count
// always equals len(p); a full accumulator is not an error condition.
func (a *Accumulator) Write(p []byte) (int, error) {
	room := cap(a.buf) - len(a.buf)
	if room > 0 {
		if len(p) > room {
			a.buf = append(a.buf, p[:room]...)
		} else {
			a.buf = append(a.buf, p...)
		}
	}
	return len(p), nil
}

// Len returns the number of buffered bytes.
func (a *Accumulator) Len() int {
	return len(a.buf)
}

// Drain returns the buffered bytes and clears the accumulator.
func (a *Accumulator) Drain() []byte {
	if len(a.buf) == 0 {
		return nil
	}
	out := make([]byte, len(a.buf))
	copy(out, a.buf)
	a.buf = a.buf[:0]
	return out
}
