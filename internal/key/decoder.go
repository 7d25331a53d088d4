package key

import "bytes"

// Result classifies one byte fed to the Decoder.
type Result int

const (
	// ResultNotEscape means the byte is not part of an escape sequence;
	// the caller processes it as a literal character.
	ResultNotEscape Result = iota

	// ResultGathering means the byte extended a partially-matched
	// sequence; more bytes are needed before a decision.
	ResultGathering

	// ResultUnhandled means a sequence started but matched no table
	// entry. The involved bytes are discarded, never re-interpreted as
	// literals.
	ResultUnhandled

	// ResultMatch means the accumulated bytes exactly matched a table
	// entry; the decoded Char accompanies this result.
	ResultMatch
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultNotEscape:
		return "NotEscape"
	case ResultGathering:
		return "Gathering"
	case ResultUnhandled:
		return "Unhandled"
	case ResultMatch:
		return "Match"
	default:
		return "Result(?)"
	}
}

// maxSeqLen is the longest sequence the table may contain.
const maxSeqLen = 5

// sequence pairs the raw bytes of an escape sequence with the extended
// character it decodes to.
type sequence struct {
	raw  []byte
	char Char
}

// sequences is the fixed recognition table. Entry i (1-based) decodes
// to escBase+i; the Char constants in key.go mirror this order.
var sequences = []sequence{
	{[]byte{0x1B, '[', 'A'}, CharUp},
	{[]byte{0x1B, '[', 'B'}, CharDown},
	{[]byte{0x1B, '[', 'C'}, CharRight},
	{[]byte{0x1B, '[', 'D'}, CharLeft},
	{[]byte{0x1B, '[', 'H'}, CharHome},
	{[]byte{0x1B, '[', 'F'}, CharEnd},
	{[]byte{0x1B, '[', '3', '~'}, CharDelete},
	{[]byte{0x1B, 'O', 'P'}, CharF1},
	{[]byte{0x1B, 'O', 'Q'}, CharF2},
	{[]byte{0x1B, 'O', 'R'}, CharF3},
	{[]byte{0x1B, 'O', 'S'}, CharF4},
	{[]byte{0x1B, '[', '1', '5', '~'}, CharF5},
	{[]byte{0x1B, '[', '1', '7', '~'}, CharF6},
	{[]byte{0x1B, '[', '1', '8', '~'}, CharF7},
	{[]byte{0x1B, '[', '1', '9', '~'}, CharF8},
	{[]byte{0x1B, '[', '2', '0', '~'}, CharF9},
}

// Decoder recognizes multi-byte escape sequences one raw byte at a
// time. The zero value is ready to use. A Decoder holds no heap
// allocations; the accumulator is a fixed array.
type Decoder struct {
	buf [maxSeqLen]byte
	n   int
}

// Gathering returns true while a sequence is mid-flight.
func (d *Decoder) Gathering() bool {
	return d.n > 0
}

// Reset discards any partially gathered sequence.
func (d *Decoder) Reset() {
	d.n = 0
}

// Feed consumes one raw byte and reports how it was classified. The
// decoded Char is meaningful only for ResultMatch; for ResultNotEscape
// the caller already has the literal byte.
//
// An escape byte always restarts collection, even mid-sequence: a
// second escape never releases the first sequence's bytes as literals.
func (d *Decoder) Feed(c byte) (Result, Char) {
	if c == 0x1B {
		d.buf[0] = c
		d.n = 1
		return ResultGathering, 0
	}

	if d.n == 0 {
		return ResultNotEscape, Char(c)
	}

	if d.n >= maxSeqLen {
		// Accumulator exhausted without a match.
		d.n = 0
		return ResultUnhandled, 0
	}
	d.buf[d.n] = c
	d.n++

	prefix := false
	for _, seq := range sequences {
		if len(seq.raw) < d.n || !bytes.HasPrefix(seq.raw, d.buf[:d.n]) {
			continue
		}
		if len(seq.raw) == d.n {
			d.n = 0
			return ResultMatch, seq.char
		}
		prefix = true
	}
	if prefix {
		return ResultGathering, 0
	}

	d.n = 0
	return ResultUnhandled, 0
}
