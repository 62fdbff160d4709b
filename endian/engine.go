// Package endian provides byte order utilities for wire-format encoding.
//
// The Protocol Buffers wire format fixes all multi-byte scalars to
// little-endian, so most callers only ever need GetLittleEndianEngine:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, math.Float32bits(v))
//
// The EndianEngine interface combines ByteOrder and AppendByteOrder from
// encoding/binary so the same engine value serves both in-place writes
// (PutUint32) and appending writes (AppendUint32). The append form avoids
// a temporary buffer and is measurably faster on hot paths.
//
// The big-endian engine exists for envelope tooling that inspects headers
// on big-endian fixtures; the wire format itself never uses it.
//
// All returned engines are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by the wire
// format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
