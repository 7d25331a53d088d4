// Package editor implements the incremental line editor at the heart
// of the shell.
//
// An Editor owns the in-progress line buffer and an edit cursor
// distinct from the buffer length. Each extended character applied to
// it mutates the buffer and emits the minimal terminal byte sequence
// needed to keep a remote display consistent with the buffer.
//
// The editor assumes a dumb terminal with no cursor addressing: the
// only portable way to insert or delete mid-line is to repaint
// everything after the edit point and walk the visible cursor back with
// backspace bytes. That repaint pattern is load-bearing for visual
// correctness and must not be "optimized" into cursor-movement escape
// sequences.
//
// All buffers are fixed capacity and allocated at construction; the
// character-processing path performs no heap allocation.
package editor
