package shell

import (
	"io"

	"github.com/google/uuid"

	"github.com/tomschlintz/uP/internal/command"
	"github.com/tomschlintz/uP/internal/editor"
	"github.com/tomschlintz/uP/internal/history"
	"github.com/tomschlintz/uP/internal/key"
)

// Session is one interactive shell: decoder, line editor, history ring
// and command dispatcher behind a single byte-at-a-time entry point.
// A Session is not safe for concurrent use; drive it from one
// goroutine.
type Session struct {
	id          string
	decoder     key.Decoder
	editor      *editor.Editor
	ring        *history.Ring
	registry    *command.Registry
	dispatcher  *command.Dispatcher
	out         io.ByteWriter
	acc         *editor.Accumulator
	prompt      string
	lineEnd     string
	historySize int
}

// New creates a session. Without WithOutput, terminal bytes accumulate
// internally and are read with Drain; without WithRegistry the session
// gets a private command table.
func New(opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		prompt:      DefaultPrompt,
		lineEnd:     DefaultLineEnd,
		historySize: history.DefaultSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.out == nil {
		s.acc = editor.NewAccumulator(editor.DefaultAccumulatorSize)
		s.out = s.acc
	}
	if s.registry == nil {
		s.registry = command.NewRegistry()
	}
	s.ring = history.NewRing(s.historySize)
	s.editor = editor.New(s.out)
	s.editor.SetCompleter(s.registry)
	s.dispatcher = command.NewDispatcher(s.registry, asWriter(s.out), s.lineEnd)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Registry returns the session's command table.
func (s *Session) Registry() *command.Registry {
	return s.registry
}

// Register adds a command to the session's table. See
// command.Registry.Register for the failure cases.
func (s *Session) Register(name string, h command.Handler, help string, hints []string) bool {
	return s.registry.Register(name, h, help, hints)
}

// Line returns the in-progress line buffer content.
func (s *Session) Line() string {
	return s.editor.Line()
}

// Start emits the initial prompt.
func (s *Session) Start() {
	s.writeString(s.prompt)
}

// Drain returns and clears the accumulated output. It returns nil when
// the session was built with an explicit output sink.
func (s *Session) Drain() []byte {
	if s.acc == nil {
		return nil
	}
	return s.acc.Drain()
}

// Feed processes exactly one raw input byte. It returns the completed
// line and true when the byte finished a line; by then the line has
// already been dispatched and, if non-empty, pushed into history. All
// terminal feedback for the byte has been written to the output sink
// (or the internal accumulator) when Feed returns.
func (s *Session) Feed(c byte) (string, bool) {
	res, ch := s.decoder.Feed(c)
	switch res {
	case key.ResultGathering:
		return "", false
	case key.ResultUnhandled:
		// A sequence started but matched nothing; its bytes are
		// discarded, never replayed as literals.
		return "", false
	}
	return s.apply(ch)
}

// FeedString pushes every byte of input through Feed and returns the
// last completed line, if any. Intended for tests and scripted use.
func (s *Session) FeedString(input string) (string, bool) {
	var lastLine string
	var completed bool
	for i := 0; i < len(input); i++ {
		if line, done := s.Feed(input[i]); done {
			lastLine = line
			completed = true
		}
	}
	return lastLine, completed
}

func (s *Session) apply(ch key.Char) (string, bool) {
	switch ch {
	case key.CharInterrupt:
		// Ctrl-C unconditionally discards the in-progress line and
		// recall state, then re-displays the prompt.
		s.editor.Reset()
		s.ring.ResetRecall()
		s.decoder.Reset()
		s.writeString(s.lineEnd)
		s.writeString(s.prompt)
		return "", false

	case key.CharUp, key.CharF3:
		if line, ok := s.ring.Previous(); ok {
			s.editor.SetLine(line)
		}
		return "", false

	case key.CharDown:
		if line, ok := s.ring.Next(); ok {
			s.editor.SetLine(line)
		}
		return "", false
	}

	line, done := s.editor.Apply(ch)
	if !done {
		return "", false
	}

	s.writeString(s.lineEnd)
	if line != "" {
		s.dispatcher.Dispatch(line)
		s.ring.Push(line)
	}
	s.ring.ResetRecall()
	s.writeString(s.prompt)
	return line, true
}

func (s *Session) writeString(str string) {
	for i := 0; i < len(str); i++ {
		_ = s.out.WriteByte(str[i])
	}
}

// byteWriter adapts an io.ByteWriter to io.Writer for handler output.
type byteWriter struct {
	w io.ByteWriter
}

func (b byteWriter) Write(p []byte) (int, error) {
	for _, c := range p {
		if err := b.w.WriteByte(c); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func asWriter(w io.ByteWriter) io.Writer {
	if ww, ok := w.(io.Writer); ok {
		return ww
	}
	return byteWriter{w: w}
}
