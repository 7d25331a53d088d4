package command

import (
	"strings"
	"sync"
)

// MaxCommands is the registry capacity, including the built-in help
// entry.
const MaxCommands = 64

// entry is one registered command. All fields are borrowed references
// owned by whoever registered them.
type entry struct {
	name    string
	handler Handler
	help    string
	hints   []string
}

// Registry is the append-only command table. A single registry may be
// shared by multiple sessions; registration and lookup are safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	entries  []entry
	helpInit bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make([]entry, 0, MaxCommands),
	}
}

// Register adds a command to the table. It returns false, leaving the
// table unchanged, when the table is full or the handler is nil.
//
// The very first successful registration also installs the built-in
// "help" command, so help is available without explicit setup.
func (r *Registry) Register(name string, h Handler, help string, hints []string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(name, h, help, hints)
}

func (r *Registry) register(name string, h Handler, help string, hints []string) bool {
	if h == nil || name == "" {
		return false
	}
	if !r.helpInit {
		// Flag first so the recursive call terminates.
		r.helpInit = true
		r.register("help", HandlerFunc(r.handleHelp), "list available commands", nil)
	}
	if len(r.entries) >= MaxCommands {
		return false
	}
	r.entries = append(r.entries, entry{name: name, handler: h, help: help, hints: hints})
	return true
}

// ensureHelp installs the built-in help entry if nothing has been
// registered yet, so "help" works even when the caller never registers
// a command of its own.
func (r *Registry) ensureHelp() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.helpInit {
		return
	}
	r.helpInit = true
	r.register("help", HandlerFunc(r.handleHelp), "list available commands", nil)
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Names returns the registered command names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Hints returns the hint strings registered for a command, nil when
// the command is unknown or registered no hints.
func (r *Registry) Hints(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.name == name {
			return e.hints
		}
	}
	return nil
}

// lookup returns the handler for an exact command name.
func (r *Registry) lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.name == name {
			return e.handler, true
		}
	}
	return nil, false
}

// UniquePrefix scans the registered names for those having partial as
// a strict prefix. It returns the single qualifying name, or false when
// zero or more than one command qualifies.
func (r *Registry) UniquePrefix(partial string) (string, bool) {
	if partial == "" {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	match := ""
	for _, e := range r.entries {
		if len(e.name) > len(partial) && strings.HasPrefix(e.name, partial) {
			if match != "" {
				return "", false
			}
			match = e.name
		}
	}
	if match == "" {
		return "", false
	}
	return match, true
}

// handleHelp is the built-in help command: it enumerates every
// registered command with its help text.
func (r *Registry) handleHelp(inv Invocation) {
	r.mu.RLock()
	entries := make([]entry, len(r.entries))
	copy(entries, r.entries)
	r.mu.RUnlock()

	inv.Reply("commands:")
	for _, e := range entries {
		if e.help == "" {
			inv.Reply("  %s", e.name)
			continue
		}
		inv.Reply("  %-12s %s", e.name, e.help)
	}
}
