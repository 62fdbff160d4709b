package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/format"
)

// samplePayload mimics an encoded message: tag bytes, varints and a
// repetitive packed block that compresses well.
func samplePayload(size int) []byte {
	pattern := []byte{0x0A, 0x06, 0x96, 0x01, 0x02, 0x03, 0x1A, 0x04}
	data := make([]byte, 0, size)
	for len(data) < size {
		data = append(data, pattern...)
	}

	return data[:size]
}

func TestNewCodec(t *testing.T) {
	for _, ctype := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := NewCodec(ctype)
		require.NoError(t, err, ctype.String())
		require.NotNil(t, codec)
	}

	_, err := NewCodec(format.CompressionType(0xF))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := samplePayload(8192)

	tests := []struct {
		name  string
		codec Codec
	}{
		{"noop", NewNoOpCompressor()},
		{"zstd", NewZstdCompressor()},
		{"s2", NewS2Compressor()},
		{"lz4", NewLZ4Compressor()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := tt.codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := tt.codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, decompressed))
		})
	}
}

func TestCodecs_CompressibleDataShrinks(t *testing.T) {
	payload := samplePayload(16384)

	for _, codec := range []Codec{NewZstdCompressor(), NewS2Compressor(), NewLZ4Compressor()} {
		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload))
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, codec := range []Codec{NewNoOpCompressor(), NewS2Compressor(), NewLZ4Compressor()} {
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, decompressed)
	}
}
