package format

type (
	WireType        uint8
	CompressionType uint8
)

const (
	WireVarint  WireType = 0 // WireVarint represents base-128 varint framing.
	WireFixed64 WireType = 1 // WireFixed64 represents 8-byte little-endian framing.
	WireBytes   WireType = 2 // WireBytes represents length-delimited framing.
	WireFixed32 WireType = 5 // WireFixed32 represents 4-byte little-endian framing.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (w WireType) String() string {
	switch w {
	case WireVarint:
		return "Varint"
	case WireFixed64:
		return "Fixed64"
	case WireBytes:
		return "Bytes"
	case WireFixed32:
		return "Fixed32"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
