package shell

import (
	"io"

	"github.com/tomschlintz/uP/internal/command"
)

// Defaults for session construction.
const (
	// DefaultPrompt is echoed after each completed line.
	DefaultPrompt = "> "

	// MaxPrompt bounds the configurable prompt length.
	MaxPrompt = 16

	// DefaultLineEnd terminates lines the session emits itself,
	// independent of what terminators it accepts on input.
	DefaultLineEnd = command.DefaultLineEnd
)

// Option configures a Session at construction time.
type Option func(*Session)

// WithOutput supplies the byte sink terminal output is pushed to. When
// absent, output accumulates in a bounded internal buffer read via
// Drain.
func WithOutput(out io.ByteWriter) Option {
	return func(s *Session) {
		s.out = out
	}
}

// WithPrompt sets the prompt string, truncated to MaxPrompt
// characters.
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		if len(prompt) > MaxPrompt {
			prompt = prompt[:MaxPrompt]
		}
		s.prompt = prompt
	}
}

// WithLineEnd sets the line terminator the session emits after prompts
// and command output. Input terminators are unaffected: CR, LF, and
// CRLF/LFCR pairs are always accepted.
func WithLineEnd(lineEnd string) Option {
	return func(s *Session) {
		if lineEnd != "" {
			s.lineEnd = lineEnd
		}
	}
}

// WithRegistry shares an existing command table with this session
// instead of creating a private one.
func WithRegistry(reg *command.Registry) Option {
	return func(s *Session) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithHistorySize sets the recall depth of the history ring.
func WithHistorySize(n int) Option {
	return func(s *Session) {
		s.historySize = n
	}
}
