package wire

import (
	"math"

	"github.com/arloliu/protowire/endian"
	"github.com/arloliu/protowire/format"
)

// DefaultChunkSize is the chunk size used by writers created with NewWriter.
// 256 bytes benchmarked fastest for typical message sizes; larger chunks
// waste tail space on small messages, smaller ones seal too often.
const DefaultChunkSize = 256

// emptyBytes is the shared result for Finish on an untouched writer.
// It has zero capacity, so any append reallocates and callers cannot
// mutate the shared value.
var emptyBytes = make([]byte, 0)

// state is one snapshot on the fork stack.
type state struct {
	bufs [][]byte
	buf  []byte
	pos  int
}

// Writer emits the Protocol Buffers binary wire format into a chunked
// buffer. All write operations return the writer to allow chaining:
//
//	data := wire.NewWriter().
//	    Tag(1, format.WireBytes).
//	    String("hello").
//	    Finish()
//
// See the package documentation for the Fork/Reset/Finish discipline.
//
// Note: The Writer is NOT thread-safe. Each writer instance must be used
// by a single goroutine at a time.
type Writer struct {
	bufs  [][]byte // sealed chunks, in write order
	buf   []byte   // active chunk, nil until the first write
	pos   int      // write cursor within buf
	stack []state  // fork snapshots, LIFO

	chunkSize int
	engine    endian.EndianEngine
}

// NewWriter creates a writer with the default chunk size.
func NewWriter() *Writer {
	return NewWriterSize(DefaultChunkSize)
}

// NewWriterSize creates a writer with the given chunk size.
// Sizes below 16 bytes fall back to DefaultChunkSize.
func NewWriterSize(chunkSize int) *Writer {
	if chunkSize < 16 {
		chunkSize = DefaultChunkSize
	}

	return &Writer{
		chunkSize: chunkSize,
		engine:    endian.GetLittleEndianEngine(),
	}
}

// ensure guarantees the active chunk has room for n more bytes.
// The single comparison keeps per-byte capacity tests out of the varint
// hot loops.
func (w *Writer) ensure(n int) {
	if w.pos+n <= len(w.buf) {
		return
	}
	w.expand(n)
}

// expand seals the active chunk and allocates a fresh one of at least n bytes.
func (w *Writer) expand(n int) {
	if w.buf != nil {
		w.bufs = append(w.bufs, w.buf[:w.pos])
	}

	size := w.chunkSize
	if n > size {
		size = n
	}
	w.buf = make([]byte, size)
	w.pos = 0
}

// Len returns the total number of bytes written to the current stream.
func (w *Writer) Len() int {
	n := w.pos
	for _, chunk := range w.bufs {
		n += len(chunk)
	}

	return n
}

// Tag emits a field tag: (id << 3) | wireType, varint-encoded.
// Ids up to 15 produce a single byte; larger ids use the same varint
// path and take more bytes.
func (w *Writer) Tag(id int32, wt format.WireType) *Writer {
	return w.Uint32(uint32(id)<<3 | uint32(wt))
}

// Uint32 emits v as a base-128 varint of at most 5 bytes.
func (w *Writer) Uint32(v uint32) *Writer {
	w.ensure(5)
	for v >= 0x80 {
		w.buf[w.pos] = byte(v) | 0x80
		w.pos++
		v >>= 7
	}
	w.buf[w.pos] = byte(v)
	w.pos++

	return w
}

// Int32 emits v as a varint. Negative values are sign-extended to 64 bits
// and emit the canonical 10-byte form, so they round-trip as int64 the way
// the wire format requires.
func (w *Writer) Int32(v int32) *Writer {
	if v < 0 {
		return w.Uint64(uint64(v)) // sign-extends
	}

	return w.Uint32(uint32(v))
}

// Sint32 zig-zag encodes v then emits it as a varint.
func (w *Writer) Sint32(v int32) *Writer {
	return w.Uint32(uint32((v << 1) ^ (v >> 31)))
}

// Uint64 emits v as a base-128 varint of at most 10 bytes.
func (w *Writer) Uint64(v uint64) *Writer {
	w.ensure(10)
	for v >= 0x80 {
		w.buf[w.pos] = byte(v) | 0x80
		w.pos++
		v >>= 7
	}
	w.buf[w.pos] = byte(v)
	w.pos++

	return w
}

// Int64 emits v as a varint.
func (w *Writer) Int64(v int64) *Writer {
	return w.Uint64(uint64(v))
}

// Sint64 zig-zag encodes v then emits it as a varint.
func (w *Writer) Sint64(v int64) *Writer {
	return w.Uint64(uint64(v<<1) ^ uint64(v>>63))
}

// Fixed32 emits v as 4 little-endian bytes.
func (w *Writer) Fixed32(v uint32) *Writer {
	w.ensure(4)
	w.engine.PutUint32(w.buf[w.pos:w.pos+4], v)
	w.pos += 4

	return w
}

// Sfixed32 zig-zag encodes v then emits it as 4 little-endian bytes.
func (w *Writer) Sfixed32(v int32) *Writer {
	return w.Fixed32(uint32((v << 1) ^ (v >> 31)))
}

// Fixed64 emits v as 8 little-endian bytes.
func (w *Writer) Fixed64(v uint64) *Writer {
	w.ensure(8)
	w.engine.PutUint64(w.buf[w.pos:w.pos+8], v)
	w.pos += 8

	return w
}

// Sfixed64 emits v as 8 little-endian two's-complement bytes.
func (w *Writer) Sfixed64(v int64) *Writer {
	return w.Fixed64(uint64(v))
}

// Float emits v as a 32-bit IEEE-754 value, little-endian.
func (w *Writer) Float(v float32) *Writer {
	return w.Fixed32(math.Float32bits(v))
}

// Double emits v as a 64-bit IEEE-754 value, little-endian.
func (w *Writer) Double(v float64) *Writer {
	return w.Fixed64(math.Float64bits(v))
}

// Bool emits one byte: 1 for true, 0 for false.
func (w *Writer) Bool(v bool) *Writer {
	w.ensure(1)
	if v {
		w.buf[w.pos] = 1
	} else {
		w.buf[w.pos] = 0
	}
	w.pos++

	return w
}

// Bytes emits a varint length prefix followed by the raw bytes.
// An empty or nil value emits the single byte 0x00.
func (w *Writer) Bytes(value []byte) *Writer {
	w.Uint32(uint32(len(value)))
	if len(value) > 0 {
		w.ensure(len(value))
		copy(w.buf[w.pos:], value)
		w.pos += len(value)
	}

	return w
}

// String emits a varint UTF-8 byte length prefix followed by the encoded
// string. Go strings are UTF-8, so len(value) is the exact byte length,
// 4-byte code points included.
func (w *Writer) String(value string) *Writer {
	w.Uint32(uint32(len(value)))
	if len(value) > 0 {
		w.ensure(len(value))
		copy(w.buf[w.pos:], value)
		w.pos += len(value)
	}

	return w
}

// Fork pushes a snapshot of the current stream and begins a fresh
// sub-stream. Use it to emit a length-delimited sub-message without
// precomputing its length; see the package documentation.
func (w *Writer) Fork() *Writer {
	w.stack = append(w.stack, state{bufs: w.bufs, buf: w.buf, pos: w.pos})
	w.bufs, w.buf, w.pos = nil, nil, 0

	return w
}

// Reset pops the top snapshot and applies it, restoring the stream that
// was active before the matching Fork. With an empty stack, Reset clears
// the writer.
func (w *Writer) Reset() *Writer {
	if n := len(w.stack); n > 0 {
		top := w.stack[n-1]
		w.stack[n-1] = state{}
		w.stack = w.stack[:n-1]
		w.bufs, w.buf, w.pos = top.bufs, top.buf, top.pos
	} else {
		w.bufs, w.buf, w.pos = nil, nil, 0
	}

	return w
}

// Finish returns the bytes of the current stream as one contiguous slice:
// all sealed chunks in order, then the active chunk up to the cursor.
// The current stream is cleared; fork snapshots are left untouched, so a
// forked caller must still Reset to restore the parent stream.
//
// An untouched writer returns a shared zero-length slice.
func (w *Writer) Finish() []byte {
	total := w.Len()
	if total == 0 {
		w.bufs, w.buf, w.pos = nil, nil, 0
		return emptyBytes
	}

	out := make([]byte, 0, total)
	for _, chunk := range w.bufs {
		out = append(out, chunk...)
	}
	out = append(out, w.buf[:w.pos]...)

	w.bufs, w.buf, w.pos = nil, nil, 0

	return out
}
