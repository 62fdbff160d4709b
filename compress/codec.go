// Package compress provides the payload codecs used by envelope framing:
// Zstandard, S2, LZ4 and a pass-through no-op.
//
// Encoded protobuf payloads compress well when they carry repeated
// structure (long packed blocks, recurring sub-messages); the envelope
// writer picks a codec per message, so callers trade CPU for size per
// call site rather than globally.
package compress

import (
	"fmt"

	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/format"
)

// Compressor compresses one payload.
//
// Memory management:
//   - Returned slice is owned by the caller; it is newly allocated,
//     except that NoOpCompressor returns the input slice itself
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm. It validates
// the input framing and returns an error on corrupted or mismatched
// data.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the codec for a compression type.
func NewCodec(ctype format.CompressionType) (Codec, error) {
	switch ctype {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidCompression, ctype)
	}
}
