package wire

import (
	"math"

	"github.com/arloliu/protowire/endian"
	"github.com/arloliu/protowire/format"
	"github.com/arloliu/protowire/internal/pool"
)

// BufferWriter emits the same wire format as Writer into a single pooled
// contiguous buffer. It trades the chunked writer's copy-free growth for
// the endian engine's append primitives and buffer reuse across messages.
//
// Fork state is a LIFO stack of buffer offsets: Fork marks the current
// length, Finish returns a copy of the bytes written past the top mark
// and truncates back to it, Reset pops the mark. The observable
// Fork/Reset/Finish semantics match Writer exactly.
//
// Call Release when done to return the buffer to the pool; the writer
// must not be used afterwards.
//
// Note: The BufferWriter is NOT thread-safe.
type BufferWriter struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	marks  []int
}

// NewBufferWriter creates a buffer writer backed by a pooled buffer.
func NewBufferWriter() *BufferWriter {
	return &BufferWriter{
		buf:    pool.GetWireBuffer(),
		engine: endian.GetLittleEndianEngine(),
	}
}

// Len returns the number of bytes written to the current stream.
func (w *BufferWriter) Len() int {
	return w.buf.Len() - w.mark()
}

// mark returns the offset where the current stream begins.
func (w *BufferWriter) mark() int {
	if n := len(w.marks); n > 0 {
		return w.marks[n-1]
	}

	return 0
}

// Tag emits a field tag: (id << 3) | wireType, varint-encoded.
func (w *BufferWriter) Tag(id int32, wt format.WireType) *BufferWriter {
	return w.Uint32(uint32(id)<<3 | uint32(wt))
}

// Uint32 emits v as a base-128 varint of at most 5 bytes.
func (w *BufferWriter) Uint32(v uint32) *BufferWriter {
	return w.Uint64(uint64(v))
}

// Int32 emits v as a varint. Negative values sign-extend to the canonical
// 10-byte form.
func (w *BufferWriter) Int32(v int32) *BufferWriter {
	return w.Uint64(uint64(v))
}

// Sint32 zig-zag encodes v then emits it as a varint.
func (w *BufferWriter) Sint32(v int32) *BufferWriter {
	return w.Uint32(uint32((v << 1) ^ (v >> 31)))
}

// Uint64 emits v as a base-128 varint of at most 10 bytes.
func (w *BufferWriter) Uint64(v uint64) *BufferWriter {
	w.buf.Grow(10)
	b := w.buf.B
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	w.buf.B = append(b, byte(v))

	return w
}

// Int64 emits v as a varint.
func (w *BufferWriter) Int64(v int64) *BufferWriter {
	return w.Uint64(uint64(v))
}

// Sint64 zig-zag encodes v then emits it as a varint.
func (w *BufferWriter) Sint64(v int64) *BufferWriter {
	return w.Uint64(uint64(v<<1) ^ uint64(v>>63))
}

// Fixed32 emits v as 4 little-endian bytes.
func (w *BufferWriter) Fixed32(v uint32) *BufferWriter {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
	return w
}

// Sfixed32 zig-zag encodes v then emits it as 4 little-endian bytes.
func (w *BufferWriter) Sfixed32(v int32) *BufferWriter {
	return w.Fixed32(uint32((v << 1) ^ (v >> 31)))
}

// Fixed64 emits v as 8 little-endian bytes.
func (w *BufferWriter) Fixed64(v uint64) *BufferWriter {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
	return w
}

// Sfixed64 emits v as 8 little-endian two's-complement bytes.
func (w *BufferWriter) Sfixed64(v int64) *BufferWriter {
	return w.Fixed64(uint64(v))
}

// Float emits v as a 32-bit IEEE-754 value, little-endian.
func (w *BufferWriter) Float(v float32) *BufferWriter {
	return w.Fixed32(math.Float32bits(v))
}

// Double emits v as a 64-bit IEEE-754 value, little-endian.
func (w *BufferWriter) Double(v float64) *BufferWriter {
	return w.Fixed64(math.Float64bits(v))
}

// Bool emits one byte: 1 for true, 0 for false.
func (w *BufferWriter) Bool(v bool) *BufferWriter {
	if v {
		w.buf.MustWrite([]byte{1})
	} else {
		w.buf.MustWrite([]byte{0})
	}

	return w
}

// Bytes emits a varint length prefix followed by the raw bytes.
func (w *BufferWriter) Bytes(value []byte) *BufferWriter {
	w.Uint32(uint32(len(value)))
	if len(value) > 0 {
		w.buf.MustWrite(value)
	}

	return w
}

// String emits a varint UTF-8 byte length prefix followed by the string.
func (w *BufferWriter) String(value string) *BufferWriter {
	w.Uint32(uint32(len(value)))
	if len(value) > 0 {
		w.buf.Grow(len(value))
		w.buf.B = append(w.buf.B, value...)
	}

	return w
}

// Fork marks the current length and begins a fresh sub-stream.
func (w *BufferWriter) Fork() *BufferWriter {
	w.marks = append(w.marks, w.buf.Len())
	return w
}

// Reset pops the top mark, discarding anything written past it. With no
// marks, Reset clears the buffer.
func (w *BufferWriter) Reset() *BufferWriter {
	if n := len(w.marks); n > 0 {
		w.buf.Truncate(w.marks[n-1])
		w.marks = w.marks[:n-1]
	} else {
		w.buf.Reset()
	}

	return w
}

// Finish returns a copy of the current stream's bytes and truncates the
// stream. As with Writer, fork marks are left in place; a forked caller
// must still Reset to return to the parent stream.
func (w *BufferWriter) Finish() []byte {
	start := w.mark()
	if w.buf.Len() == start {
		return emptyBytes
	}

	out := append([]byte(nil), w.buf.B[start:]...)
	w.buf.Truncate(start)

	return out
}

// Release returns the pooled buffer. The writer must not be used after.
func (w *BufferWriter) Release() {
	if w.buf != nil {
		pool.PutWireBuffer(w.buf)
		w.buf = nil
	}
	w.marks = nil
}
