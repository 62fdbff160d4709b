// Package section defines the binary envelope layout that frames one
// encoded message for storage or transport.
//
// An envelope is a fixed 8-byte header followed by the (optionally
// compressed) message payload:
//
//	┌──────────────────────────────────────────────┐
//	│ Magic (2 bytes, little-endian): 0xEC10       │
//	│ Flag (1 byte): compression type in bits 0-3  │
//	│ Reserved (1 byte): zero                      │
//	│ OrigSize (4 bytes, little-endian)            │
//	├──────────────────────────────────────────────┤
//	│ Payload (variable)                           │
//	└──────────────────────────────────────────────┘
//
// OrigSize records the uncompressed payload length so decoders can
// pre-size their buffers.
package section

import (
	"fmt"

	"github.com/arloliu/protowire/endian"
	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/format"
)

const (
	// HeaderSize is the fixed envelope header size in bytes.
	HeaderSize = 8

	// MagicEnvelopeV1 identifies a version 1 envelope.
	MagicEnvelopeV1 = 0xEC10

	// CompressionMask selects the compression type bits of the flag byte.
	CompressionMask = 0x0F
)

// EnvelopeHeader is the decoded fixed header of an envelope.
type EnvelopeHeader struct {
	Magic       uint16
	Compression format.CompressionType
	OrigSize    uint32
}

// NewEnvelopeHeader creates a version 1 header.
func NewEnvelopeHeader(compression format.CompressionType, origSize uint32) EnvelopeHeader {
	return EnvelopeHeader{
		Magic:       MagicEnvelopeV1,
		Compression: compression,
		OrigSize:    origSize,
	}
}

// Append serializes the header onto buf using the given engine and
// returns the extended slice.
func (h EnvelopeHeader) Append(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint16(buf, h.Magic)
	buf = append(buf, byte(h.Compression)&CompressionMask, 0)

	return engine.AppendUint32(buf, h.OrigSize)
}

// ParseEnvelopeHeader decodes and validates the fixed header of data.
func ParseEnvelopeHeader(data []byte, engine endian.EndianEngine) (EnvelopeHeader, error) {
	if len(data) < HeaderSize {
		return EnvelopeHeader{}, fmt.Errorf("%w: %d bytes", errs.ErrEnvelopeTooShort, len(data))
	}

	h := EnvelopeHeader{
		Magic:       engine.Uint16(data[0:2]),
		Compression: format.CompressionType(data[2] & CompressionMask),
		OrigSize:    engine.Uint32(data[4:8]),
	}
	if h.Magic != MagicEnvelopeV1 {
		return EnvelopeHeader{}, fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagic, h.Magic)
	}
	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return EnvelopeHeader{}, fmt.Errorf("%w: 0x%02X", errs.ErrInvalidCompression, uint8(h.Compression))
	}

	return h, nil
}
