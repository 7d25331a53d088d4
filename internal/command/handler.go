package command

import (
	"fmt"
	"io"
)

// Invocation carries one dispatched command line to its handler.
type Invocation struct {
	// Command is the first token of the line, as typed.
	Command string

	// Params holds the parameter words, at most MaxParams of them.
	Params []string

	out     io.Writer
	lineEnd string
}

// Reply writes one line of user-facing output, terminated with the
// session's configured line end.
func (inv Invocation) Reply(format string, args ...any) {
	if inv.out == nil {
		return
	}
	fmt.Fprintf(inv.out, format, args...)
	io.WriteString(inv.out, inv.lineEnd)
}

// Out returns the raw output writer for handlers that format their own
// line ends. It may be nil when the session runs without output.
func (inv Invocation) Out() io.Writer {
	return inv.out
}

// Handler processes one dispatched command.
type Handler interface {
	Handle(inv Invocation)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(inv Invocation)

// Handle implements Handler.
func (f HandlerFunc) Handle(inv Invocation) {
	f(inv)
}

// ConfirmParams checks that an invocation carries at least min
// parameters. On a shortfall it reports the mismatch to the user and
// returns false. This is advisory: the dispatcher never enforces
// parameter counts, handlers opt in by calling it.
func ConfirmParams(inv Invocation, min int) bool {
	if len(inv.Params) >= min {
		return true
	}
	inv.Reply("%s: expected %d parameter(s), got %d", inv.Command, min, len(inv.Params))
	return false
}
