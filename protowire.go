// Package protowire provides a Protocol Buffers-compatible binary
// encoder driven by a runtime schema reflection model.
//
// Schemas are built programmatically or parsed from a JSON dialect,
// resolved once, and then used to encode dynamic message values
// (map[string]any) into the canonical protobuf wire format: varints,
// little-endian fixed-width scalars, and length-delimited strings,
// bytes and sub-messages.
//
// # Basic Usage
//
// Encoding a message from a JSON schema:
//
//	import "github.com/arloliu/protowire"
//
//	root, _ := protowire.FromJSON([]byte(`{
//	    "nested": {
//	        "Car": {
//	            "fields": {
//	                "model":  {"id": 1, "type": "string"},
//	                "wheels": {"id": 2, "type": "int32"}
//	            }
//	        }
//	    }
//	}`))
//	_ = root.ResolveAll()
//
//	car := root.Lookup("Car").(*desc.Message)
//	data, _ := protowire.Marshal(car, map[string]any{
//	    "model":  "roadster",
//	    "wheels": 4,
//	})
//
// Framing a message into a compressed envelope:
//
//	data, _ := protowire.MarshalEnvelope(car, value,
//	    protowire.WithCompression(format.CompressionZstd))
//	payload, _ := protowire.UnmarshalEnvelope(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the wire
// and desc packages, simplifying the most common use cases. For
// fine-grained control (chunk sizes, fork/reset sub-encoding, the
// pooled BufferWriter variant), use the wire package directly; for
// programmatic schema construction and JSON export, use desc.
package protowire

import (
	"github.com/arloliu/protowire/compress"
	"github.com/arloliu/protowire/desc"
	"github.com/arloliu/protowire/endian"
	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/format"
	"github.com/arloliu/protowire/internal/options"
	"github.com/arloliu/protowire/section"
	"github.com/arloliu/protowire/wire"
)

// NewWriter creates a wire writer with the default chunk size.
func NewWriter() *wire.Writer {
	return wire.NewWriter()
}

// NewWriterSize creates a wire writer with a custom chunk size.
func NewWriterSize(chunkSize int) *wire.Writer {
	return wire.NewWriterSize(chunkSize)
}

// FromJSON parses the schema JSON dialect into a new root. The result is
// unresolved; call ResolveAll before encoding.
func FromJSON(data []byte) (*desc.Root, error) {
	return desc.FromJSON(data)
}

// Marshal encodes a dynamic message value into the binary wire format.
//
// Parameters:
//   - m: Resolved message type describing the value
//   - value: Message value as map[string]any, keyed by field name
//
// Returns:
//   - []byte: Encoded wire-format bytes
//   - error: Encoding error, if any
func Marshal(m *desc.Message, value any) ([]byte, error) {
	w := wire.NewWriter()
	if err := m.Encode(value, w); err != nil {
		return nil, err
	}

	return w.Finish(), nil
}

// envelopeConfig carries MarshalEnvelope settings.
type envelopeConfig struct {
	compression format.CompressionType
}

// EnvelopeOption configures MarshalEnvelope.
type EnvelopeOption = options.Option[*envelopeConfig]

// WithCompression selects the envelope payload compression. The default
// is CompressionNone.
func WithCompression(ctype format.CompressionType) EnvelopeOption {
	return options.New(func(c *envelopeConfig) error {
		switch ctype {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = ctype
			return nil
		default:
			return errs.ErrInvalidCompression
		}
	})
}

// MarshalEnvelope encodes a message and frames it into an envelope:
// a fixed header carrying the compression type and original size,
// followed by the optionally compressed payload.
func MarshalEnvelope(m *desc.Message, value any, opts ...EnvelopeOption) ([]byte, error) {
	cfg := &envelopeConfig{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	payload, err := Marshal(m, value)
	if err != nil {
		return nil, err
	}

	codec, err := compress.NewCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	out := make([]byte, 0, section.HeaderSize+len(compressed))
	out = section.NewEnvelopeHeader(cfg.compression, uint32(len(payload))).Append(out, engine)

	return append(out, compressed...), nil
}

// UnmarshalEnvelope validates an envelope and returns the raw encoded
// message bytes, decompressed when needed. Decoding the message body
// itself is outside protowire's scope.
func UnmarshalEnvelope(data []byte) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()
	header, err := section.ParseEnvelopeHeader(data, engine)
	if err != nil {
		return nil, err
	}

	codec, err := compress.NewCodec(header.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(data[section.HeaderSize:])
	if err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []byte{}
	}

	return payload, nil
}
