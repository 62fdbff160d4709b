package compress

// ZstdCompressor provides Zstandard compression for envelope payloads.
// Prefer it when size matters more than speed: archived schemas, bulk
// message stores, bandwidth-limited transports.
//
// Two implementations back the type: a cgo binding (valyala/gozstd) when
// cgo is available, and a pure-Go fallback (klauspost/compress/zstd)
// otherwise. Build tags pick one; the compressed format is identical.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
