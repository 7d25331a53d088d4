// Package command provides the shell's command table and line dispatch.
//
// A Registry is an append-only table mapping a command name to a
// handler, help text and optional parameter hints. A Dispatcher splits
// a completed line into a command word and parameter words, looks the
// command up by exact name, and invokes its handler. Unknown commands
// route to a built-in handler that reports them to the user; they are
// never an error.
//
// The registry holds references only: names, handlers and hint strings
// are owned by the caller and must outlive the registry. There is no
// removal operation.
package command
