package editor_test

import (
	"strings"
	"testing"

	"github.com/tomschlintz/uP/internal/editor"
	"github.com/tomschlintz/uP/internal/key"
)

type fakeCompleter struct {
	names []string
}

func (f fakeCompleter) UniquePrefix(partial string) (string, bool) {
	if partial == "" {
		return "", false
	}
	match := ""
	for _, n := range f.names {
		if len(n) > len(partial) && strings.HasPrefix(n, partial) {
			if match != "" {
				return "", false
			}
			match = n
		}
	}
	return match, match != ""
}

func newEditor() (*editor.Editor, *editor.Accumulator) {
	acc := editor.NewAccumulator(editor.MaxLine * 4)
	return editor.New(acc), acc
}

func typeString(e *editor.Editor, s string) {
	for i := 0; i < len(s); i++ {
		e.Apply(key.Char(s[i]))
	}
}

func TestTypeAtEndEchoes(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "abc")

	if got := e.Line(); got != "abc" {
		t.Errorf("Line() = %q, want %q", got, "abc")
	}
	if got := string(acc.Drain()); got != "abc" {
		t.Errorf("emitted %q, want %q", got, "abc")
	}
	if e.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", e.Cursor())
	}
}

func TestBackspaceEmptyLineNoOp(t *testing.T) {
	e, acc := newEditor()
	e.Apply(key.CharBackspace)

	if e.Len() != 0 {
		t.Error("buffer changed")
	}
	if e.Cursor() != -1 {
		t.Errorf("Cursor() = %d, want -1 (unestablished)", e.Cursor())
	}
	if acc.Len() != 0 {
		t.Errorf("emitted %q, want nothing", acc.Drain())
	}
}

func TestBackspaceAtEnd(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "ab")
	acc.Drain()

	e.Apply(key.CharBackspace)
	if got := e.Line(); got != "a" {
		t.Errorf("Line() = %q, want %q", got, "a")
	}
	if got := string(acc.Drain()); got != "\b \b" {
		t.Errorf("emitted %q, want %q", got, "\b \b")
	}
}

func TestRuboutActsAsBackspace(t *testing.T) {
	e, _ := newEditor()
	typeString(e, "xy")
	e.Apply(key.CharRubout)
	if got := e.Line(); got != "x" {
		t.Errorf("Line() = %q, want %q", got, "x")
	}
}

func TestBackspaceMidLine(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "abc")
	e.Apply(key.CharLeft)
	acc.Drain()

	// Removes 'b', repaints the shifted tail plus a blank, then walks
	// the visible cursor back to the edit position.
	e.Apply(key.CharBackspace)
	if got := e.Line(); got != "ac" {
		t.Errorf("Line() = %q, want %q", got, "ac")
	}
	if got := string(acc.Drain()); got != "\bc \b\b" {
		t.Errorf("emitted %q, want %q", got, "\bc \b\b")
	}
	if e.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", e.Cursor())
	}
}

func TestForwardDelete(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "abc")
	e.Apply(key.CharLeft)
	e.Apply(key.CharLeft)
	acc.Drain()

	e.Apply(key.CharDelete)
	if got := e.Line(); got != "ac" {
		t.Errorf("Line() = %q, want %q", got, "ac")
	}
	if got := string(acc.Drain()); got != "c \b\b" {
		t.Errorf("emitted %q, want %q", got, "c \b\b")
	}
	if e.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", e.Cursor())
	}
}

func TestForwardDeleteAtEndNoOp(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "ab")
	acc.Drain()
	e.Apply(key.CharDelete)
	if e.Line() != "ab" || acc.Len() != 0 {
		t.Error("forward delete at end of line should be a no-op")
	}
}

func TestInsertMidLine(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "ac")
	e.Apply(key.CharLeft)
	acc.Drain()

	e.Apply(key.Char('b'))
	if got := e.Line(); got != "abc" {
		t.Errorf("Line() = %q, want %q", got, "abc")
	}
	// Echo the inserted character and the shifted remainder, then step
	// back to just past the insertion.
	if got := string(acc.Drain()); got != "bc\b" {
		t.Errorf("emitted %q, want %q", got, "bc\b")
	}
	if e.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", e.Cursor())
	}
}

func TestInsertThenBackspaceRoundTrip(t *testing.T) {
	e, _ := newEditor()
	typeString(e, "hello")
	e.Apply(key.CharLeft)
	e.Apply(key.CharLeft)

	e.Apply(key.Char('X'))
	e.Apply(key.CharBackspace)

	if got := e.Line(); got != "hello" {
		t.Errorf("Line() = %q, want %q after round trip", got, "hello")
	}
	if e.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", e.Cursor())
	}
}

func TestCursorMovement(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "abc")
	acc.Drain()

	e.Apply(key.CharLeft)
	if got := string(acc.Drain()); got != "\b" {
		t.Errorf("left emitted %q, want backspace", got)
	}
	if e.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", e.Cursor())
	}

	e.Apply(key.CharRight)
	if got := string(acc.Drain()); got != "c" {
		t.Errorf("right emitted %q, want re-echoed %q", got, "c")
	}
	if e.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", e.Cursor())
	}

	// Right at end of line is a no-op.
	e.Apply(key.CharRight)
	if acc.Len() != 0 || e.Cursor() != 3 {
		t.Error("right arrow at end of line should be a no-op")
	}
}

func TestHomeAndEnd(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "abc")
	acc.Drain()

	e.Apply(key.CharHome)
	if got := string(acc.Drain()); got != "\b\b\b" {
		t.Errorf("home emitted %q, want three backspaces", got)
	}
	if e.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", e.Cursor())
	}

	e.Apply(key.CharEnd)
	if got := string(acc.Drain()); got != "abc" {
		t.Errorf("end emitted %q, want %q", got, "abc")
	}
	if e.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", e.Cursor())
	}
}

func TestLineCompletion(t *testing.T) {
	e, _ := newEditor()
	typeString(e, "add 3 4")

	line, done := e.Apply(key.CharCR)
	if !done {
		t.Fatal("CR should complete the line")
	}
	if line != "add 3 4" {
		t.Errorf("line = %q, want %q", line, "add 3 4")
	}
	if e.Len() != 0 || e.Cursor() != -1 {
		t.Error("buffer/cursor not reset after completion")
	}
}

func TestTerminatorPairAbsorbed(t *testing.T) {
	tests := []struct {
		name  string
		first key.Char
		then  key.Char
	}{
		{"crlf", key.CharCR, key.CharLF},
		{"lfcr", key.CharLF, key.CharCR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newEditor()
			typeString(e, "cmd")

			if _, done := e.Apply(tt.first); !done {
				t.Fatal("first terminator should complete the line")
			}
			if _, done := e.Apply(tt.then); done {
				t.Error("second half of the terminator pair should be absorbed")
			}

			// A fresh pair after absorption completes again.
			typeString(e, "next")
			if line, done := e.Apply(tt.first); !done || line != "next" {
				t.Errorf("got (%q, %v), want (%q, true)", line, done, "next")
			}
		})
	}
}

func TestRepeatedTerminatorCompletesEmptyLines(t *testing.T) {
	e, _ := newEditor()
	if _, done := e.Apply(key.CharCR); !done {
		t.Fatal("first CR should complete")
	}
	// CR CR is two terminators, not a pair.
	if _, done := e.Apply(key.CharCR); !done {
		t.Error("second CR should complete an empty line")
	}
}

func TestResetClearsTerminatorPairState(t *testing.T) {
	e, _ := newEditor()
	typeString(e, "cmd")
	if _, done := e.Apply(key.CharCR); !done {
		t.Fatal("CR should complete the line")
	}

	// An intervening reset (line abort) breaks the pair: the LF starts
	// a fresh terminator, completing the now-empty line.
	e.Reset()
	if _, done := e.Apply(key.CharLF); !done {
		t.Error("LF after a reset should complete, not be absorbed")
	}
}

func TestTabCompletion(t *testing.T) {
	e, acc := newEditor()
	e.SetCompleter(fakeCompleter{names: []string{"move", "mark"}})

	typeString(e, "mo")
	acc.Drain()
	e.Apply(key.CharTab)
	if got := e.Line(); got != "move" {
		t.Errorf("Line() = %q, want %q", got, "move")
	}
	if got := string(acc.Drain()); got != "ve" {
		t.Errorf("emitted %q, want the appended remainder %q", got, "ve")
	}
	if e.Cursor() != 4 {
		t.Errorf("Cursor() = %d, want 4", e.Cursor())
	}
}

func TestTabAmbiguousNoOp(t *testing.T) {
	e, acc := newEditor()
	e.SetCompleter(fakeCompleter{names: []string{"move", "mark"}})

	typeString(e, "m")
	acc.Drain()
	e.Apply(key.CharTab)
	if e.Line() != "m" || acc.Len() != 0 {
		t.Error("ambiguous prefix should leave buffer and output untouched")
	}
}

func TestTabMidLineNoOp(t *testing.T) {
	e, acc := newEditor()
	e.SetCompleter(fakeCompleter{names: []string{"move"}})

	typeString(e, "mo")
	e.Apply(key.CharLeft)
	acc.Drain()
	e.Apply(key.CharTab)
	if e.Line() != "mo" || acc.Len() != 0 {
		t.Error("tab away from end of line should be a no-op")
	}
}

func TestInsertAtCapacityDropped(t *testing.T) {
	e, acc := newEditor()
	typeString(e, strings.Repeat("x", editor.MaxLine))
	if e.Len() != editor.MaxLine {
		t.Fatalf("Len() = %d, want %d", e.Len(), editor.MaxLine)
	}
	acc.Drain()

	e.Apply(key.Char('y'))
	if e.Len() != editor.MaxLine {
		t.Error("insert past capacity changed the buffer")
	}
	if acc.Len() != 0 {
		t.Error("dropped insert should emit nothing")
	}
}

func TestSetLine(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "old")
	acc.Drain()

	e.SetLine("recalled")
	if got := e.Line(); got != "recalled" {
		t.Errorf("Line() = %q, want %q", got, "recalled")
	}
	if e.Cursor() != len("recalled") {
		t.Errorf("Cursor() = %d, want end of line", e.Cursor())
	}
	// Erase the three visible characters, then echo the recalled text.
	want := "\b\b\b   \b\b\b" + "recalled"
	if got := string(acc.Drain()); got != want {
		t.Errorf("emitted %q, want %q", got, want)
	}
}

func TestReset(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "abc")
	acc.Drain()

	e.Reset()
	if e.Len() != 0 || e.Cursor() != -1 {
		t.Error("Reset should empty the buffer and unestablish the cursor")
	}
	if acc.Len() != 0 {
		t.Error("Reset should emit nothing")
	}
}

func TestIgnoredCharacters(t *testing.T) {
	e, acc := newEditor()
	typeString(e, "ab")
	acc.Drain()

	// Unmapped control characters and function keys mutate nothing.
	for _, ch := range []key.Char{key.Char(0x01), key.Char(0x1C), key.CharF1, key.CharF9} {
		if _, done := e.Apply(ch); done {
			t.Errorf("Apply(%v) reported completion", ch)
		}
	}
	if e.Line() != "ab" || acc.Len() != 0 {
		t.Error("ignored characters changed state or emitted output")
	}
}
