package command

import "io"

// DefaultLineEnd terminates user-facing output lines unless configured
// otherwise.
const DefaultLineEnd = "\r\n"

// Dispatcher tokenizes completed lines and routes them to registered
// handlers.
type Dispatcher struct {
	registry *Registry
	out      io.Writer
	lineEnd  string
}

// NewDispatcher creates a dispatcher writing handler output to out.
// An empty lineEnd falls back to DefaultLineEnd.
func NewDispatcher(reg *Registry, out io.Writer, lineEnd string) *Dispatcher {
	if lineEnd == "" {
		lineEnd = DefaultLineEnd
	}
	return &Dispatcher{
		registry: reg,
		out:      out,
		lineEnd:  lineEnd,
	}
}

// Registry returns the command table this dispatcher consults.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch processes one completed line: it splits off the command
// word, looks it up by exact name, and invokes the handler. It returns
// true when a registered handler ran. Blank lines return false with no
// output; unknown commands route to the built-in unhandled handler and
// return false.
func (d *Dispatcher) Dispatch(line string) bool {
	cmd, params := Tokenize(line)
	if cmd == "" {
		return false
	}

	// Help must answer even when nothing was ever registered.
	d.registry.ensureHelp()

	inv := Invocation{
		Command: cmd,
		Params:  params,
		out:     d.out,
		lineEnd: d.lineEnd,
	}

	h, ok := d.registry.lookup(cmd)
	if !ok {
		d.unhandled(inv)
		return false
	}
	h.Handle(inv)
	return true
}

// unhandled reports an unknown command to the user. This is feedback,
// not a fatal condition; processing continues normally.
func (d *Dispatcher) unhandled(inv Invocation) {
	inv.Reply("unhandled command: %q", inv.Command)
}
