package key

import "fmt"

// Char is an extended character: a unified symbolic value representing
// either a literal 7-bit byte or a recognized multi-byte escape
// sequence. Values 0x00-0x7F are the literal byte, so control
// characters such as Tab, CR, LF and Backspace compare directly against
// their byte values. Escape sequences decode to values at escBase and
// above.
type Char uint16

// Literal control characters the shell reacts to.
const (
	CharNone      Char = 0x00
	CharInterrupt Char = 0x03 // Ctrl-C
	CharBackspace Char = 0x08
	CharTab       Char = 0x09
	CharLF        Char = 0x0A
	CharCR        Char = 0x0D
	CharEscape    Char = 0x1B
	CharRubout    Char = 0x7F // DEL, treated as backspace
)

// escBase is the first extended code. A sequence decodes to escBase
// plus the 1-based index of its table entry, so codes stay stable as
// long as the table order is stable.
const escBase Char = 0x100

// Extended characters produced by the escape decoder. The order mirrors
// the sequence table in decoder.go.
const (
	CharUp Char = escBase + 1 + iota
	CharDown
	CharRight
	CharLeft
	CharHome
	CharEnd
	CharDelete
	CharF1
	CharF2
	CharF3
	CharF4
	CharF5
	CharF6
	CharF7
	CharF8
	CharF9
)

// IsPrintable returns true for literal bytes in the printable ASCII
// range 0x20-0x7E.
func (c Char) IsPrintable() bool {
	return c >= 0x20 && c <= 0x7E
}

// IsSequence returns true if the character came from a decoded escape
// sequence rather than a literal byte.
func (c Char) IsSequence() bool {
	return c >= escBase
}

// Byte returns the literal byte for non-sequence characters.
// For sequence characters it returns 0.
func (c Char) Byte() byte {
	if c.IsSequence() {
		return 0
	}
	return byte(c)
}

// String returns a human-readable name for the character.
func (c Char) String() string {
	switch c {
	case CharInterrupt:
		return "Interrupt"
	case CharBackspace:
		return "Backspace"
	case CharTab:
		return "Tab"
	case CharLF:
		return "LF"
	case CharCR:
		return "CR"
	case CharEscape:
		return "Escape"
	case CharRubout:
		return "Rubout"
	case CharUp:
		return "Up"
	case CharDown:
		return "Down"
	case CharRight:
		return "Right"
	case CharLeft:
		return "Left"
	case CharHome:
		return "Home"
	case CharEnd:
		return "End"
	case CharDelete:
		return "Delete"
	case CharF1, CharF2, CharF3, CharF4, CharF5, CharF6, CharF7, CharF8, CharF9:
		return fmt.Sprintf("F%d", c-CharF1+1)
	}
	if c.IsPrintable() {
		return string(rune(c))
	}
	return fmt.Sprintf("Char(0x%02X)", uint16(c))
}
