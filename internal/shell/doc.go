// Package shell wires the escape decoder, line editor, history ring
// and command dispatcher into a Session driven one input byte at a
// time.
//
// A Session is the explicit state value for one interactive shell:
// there are no package-level globals, so multiple independent sessions
// can run side by side (one per serial port or SSH connection) and
// tests stay deterministic. Each call to Feed processes exactly one
// byte, synchronously, and returns before the next byte is supplied;
// command handlers run to completion on the same call stack as the
// byte that completed their line.
package shell
