// Package format defines the small set of shared enums used to describe how a blob's
// outer envelope is compressed.
package format

// CompressionType identifies a general-purpose byte compressor applied to the outer
// envelope wrapped around a relfloat blob (see the compress and container packages).
// It has no bearing on the codec's encoding key, which selects a prefix-code variant
// for bucket-index deltas, not a byte compressor.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no envelope compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

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
