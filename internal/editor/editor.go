package editor

import (
	"io"

	"github.com/tomschlintz/uP/internal/key"
)

// MaxLine is the line buffer capacity in characters: room for a
// command word plus eight parameter words of sixteen characters each,
// separated by single spaces.
const MaxLine = 152

const backspace = 0x08

// Completer resolves a partial command word to its unique completion.
// Zero or multiple candidates report false.
type Completer interface {
	UniquePrefix(partial string) (string, bool)
}

// Editor is the incremental line editor. It owns the in-progress line
// buffer and the edit cursor, applies one extended character at a
// time, and emits terminal bytes through the configured sink.
//
// The edit cursor is unestablished (-1) at the start of each line and
// snaps to the buffer length on the first edit operation.
type Editor struct {
	buf       []byte
	cursor    int
	last      key.Char
	out       io.ByteWriter
	completer Completer
}

// New creates an editor emitting terminal bytes to out. A nil sink
// discards all output.
func New(out io.ByteWriter) *Editor {
	return &Editor{
		buf:    make([]byte, 0, MaxLine),
		cursor: -1,
		out:    out,
	}
}

// SetCompleter installs the unique-prefix lookup used by Tab
// completion. Without one, Tab is a no-op.
func (e *Editor) SetCompleter(c Completer) {
	e.completer = c
}

// SetOutput replaces the terminal byte sink.
func (e *Editor) SetOutput(out io.ByteWriter) {
	e.out = out
}

// Line returns the current buffer content.
func (e *Editor) Line() string {
	return string(e.buf)
}

// Len returns the buffer length.
func (e *Editor) Len() int {
	return len(e.buf)
}

// Cursor returns the edit cursor, -1 while unestablished.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Reset discards the in-progress line, unestablishes the cursor and
// clears the terminator-pair state. No output is emitted; the caller
// decides how to repaint.
func (e *Editor) Reset() {
	e.buf = e.buf[:0]
	e.cursor = -1
	e.last = key.CharNone
}

// Apply processes one extended character. When the character completes
// the line it returns the full line content and true, with the buffer
// and cursor already reset for the next line. Unrecognized characters
// are ignored.
func (e *Editor) Apply(ch key.Char) (string, bool) {
	switch {
	case ch == key.CharCR || ch == key.CharLF:
		// Absorb the second half of a CRLF or LFCR terminator.
		if (ch == key.CharCR && e.last == key.CharLF) ||
			(ch == key.CharLF && e.last == key.CharCR) {
			e.last = key.CharNone
			return "", false
		}
		line := string(e.buf)
		e.Reset()
		// Survives the reset so the pair's second half is absorbed.
		e.last = ch
		return line, true

	case ch == key.CharBackspace || ch == key.CharRubout:
		e.backspace()

	case ch == key.CharDelete:
		e.forwardDelete()

	case ch == key.CharLeft:
		e.left()

	case ch == key.CharRight:
		e.right()

	case ch == key.CharHome:
		e.establish()
		for e.cursor > 0 {
			e.left()
		}

	case ch == key.CharEnd:
		e.establish()
		for e.cursor < len(e.buf) {
			e.right()
		}

	case ch == key.CharTab:
		e.complete()

	case ch.IsPrintable():
		e.insert(ch.Byte())
	}

	e.last = ch
	return "", false
}

// SetLine replaces the buffer with a recalled line: the visible line is
// erased, the new text echoed, and the cursor set to end-of-line.
// Text beyond the buffer capacity is truncated.
func (e *Editor) SetLine(line string) {
	e.establish()

	// Walk back to the start of the text, blank it out, return.
	for i := 0; i < e.cursor; i++ {
		e.emit(backspace)
	}
	for i := 0; i < len(e.buf); i++ {
		e.emit(' ')
	}
	for i := 0; i < len(e.buf); i++ {
		e.emit(backspace)
	}

	if len(line) > MaxLine {
		line = line[:MaxLine]
	}
	e.buf = e.buf[:0]
	e.buf = append(e.buf, line...)
	e.cursor = len(e.buf)
	e.last = key.CharNone
	for _, c := range e.buf {
		e.emit(c)
	}
}

// establish snaps the cursor to the buffer length on the first edit
// operation of a fresh line.
func (e *Editor) establish() {
	if e.cursor < 0 {
		e.cursor = len(e.buf)
	}
}

func (e *Editor) emit(c byte) {
	if e.out != nil {
		_ = e.out.WriteByte(c)
	}
}

// repaintTail rewrites the buffer from the cursor to the end, plus one
// trailing space to erase a leftover column, then steps the visible
// cursor back to the edit position.
func (e *Editor) repaintTail() {
	for _, c := range e.buf[e.cursor:] {
		e.emit(c)
	}
	e.emit(' ')
	for i := 0; i < len(e.buf)-e.cursor+1; i++ {
		e.emit(backspace)
	}
}

func (e *Editor) backspace() {
	if len(e.buf) == 0 {
		// Buffer, cursor and output all stay untouched.
		return
	}
	e.establish()
	if e.cursor == 0 {
		return
	}
	copy(e.buf[e.cursor-1:], e.buf[e.cursor:])
	e.buf = e.buf[:len(e.buf)-1]
	e.cursor--
	e.emit(backspace)
	e.repaintTail()
}

func (e *Editor) forwardDelete() {
	if len(e.buf) == 0 {
		return
	}
	e.establish()
	if e.cursor >= len(e.buf) {
		return
	}
	copy(e.buf[e.cursor:], e.buf[e.cursor+1:])
	e.buf = e.buf[:len(e.buf)-1]
	e.repaintTail()
}

func (e *Editor) left() {
	e.establish()
	if e.cursor == 0 {
		return
	}
	e.cursor--
	e.emit(backspace)
}

// right moves the visible cursor forward by re-echoing the character
// under it; with no cursor addressing that is the only portable move.
func (e *Editor) right() {
	e.establish()
	if e.cursor >= len(e.buf) {
		return
	}
	e.emit(e.buf[e.cursor])
	e.cursor++
}

func (e *Editor) insert(c byte) {
	e.establish()
	if len(e.buf) >= MaxLine {
		return
	}
	e.buf = e.buf[:len(e.buf)+1]
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:len(e.buf)-1])
	e.buf[e.cursor] = c
	e.emit(c)
	e.cursor++

	// Repaint the shifted tail and walk back.
	for _, t := range e.buf[e.cursor:] {
		e.emit(t)
	}
	for i := 0; i < len(e.buf)-e.cursor; i++ {
		e.emit(backspace)
	}
}

// complete appends the remainder of the unique command whose name the
// buffer content strictly prefixes. Completion applies only with the
// cursor at end-of-line; ambiguity is a no-op.
func (e *Editor) complete() {
	e.establish()
	if e.completer == nil || e.cursor != len(e.buf) {
		return
	}
	match, ok := e.completer.UniquePrefix(string(e.buf))
	if !ok || len(match) <= len(e.buf) {
		return
	}
	for i := len(e.buf); i < len(match) && len(e.buf) < MaxLine; i++ {
		c := match[i]
		e.buf = append(e.buf, c)
		e.emit(c)
		e.cursor++
	}
}
