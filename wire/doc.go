// Package wire implements the Protocol Buffers binary wire format emitters.
//
// The package provides two writers with identical observable behavior:
//
//  1. Writer: a chunked, append-only byte emitter. Output grows across
//     fixed-size chunks so a long encode never copies previously written
//     bytes; the chunks are concatenated once in Finish.
//  2. BufferWriter: a contiguous variant backed by a pooled byte buffer,
//     for callers that want a single allocation-free buffer per message.
//
// # Wire Format
//
// All emitters produce bit-compatible Protocol Buffers binary encoding:
// base-128 varints with MSB continuation, little-endian fixed-width
// scalars, and length-prefixed bytes/string/sub-message payloads.
// Field tags are (fieldID << 3) | wireType, varint-encoded.
//
// # Fork / Reset / Finish
//
// Length-delimited sub-messages are emitted in a single pass with the
// fork discipline rather than a measure-then-emit double pass:
//
//	w.Fork()               // begin a fresh sub-stream, snapshot the parent
//	// ... write the sub-message body ...
//	body := w.Finish()     // take the sub-stream bytes
//	w.Reset()              // pop the snapshot, restoring the parent
//	w.Tag(id, format.WireBytes).Bytes(body)
//
// Finish never pops the fork stack: it returns the bytes of the current
// stream and clears that stream only. Reset pops one snapshot and applies
// it, or clears the writer when the stack is empty. Pair every Fork with
// a Reset after its Finish.
//
// # Concurrency
//
// Writers are single-owner and not safe for concurrent use. Each writer
// belongs to exactly one goroutine from construction to Finish.
package wire
