// Package key defines the extended character space shared across the
// shell's input pipeline and the table-driven decoder that folds
// multi-byte escape sequences into it.
//
// An extended character (Char) is a single symbolic value covering both
// literal 7-bit bytes and recognized escape sequences, so the line
// editor can treat an arrow key and a backspace uniformly. The Decoder
// consumes raw bytes one at a time and classifies each: still
// gathering a sequence, not part of a sequence at all, an unrecognized
// sequence (bytes discarded), or a completed match.
package key
