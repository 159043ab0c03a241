package container

import (
	"fmt"

	"github.com/soltveit/relfloat/compress"
	"github.com/soltveit/relfloat/format"
	"github.com/soltveit/relfloat/internal/relerr"
)

// Wrap prepends a one-byte envelope tag to frame and, for any envelope other than
// format.CompressionNone, passes the frame through the matching secondary compressor
// first. The frame itself is never altered by this step; it is only ever wrapped or
// unwrapped.
func Wrap(frame []byte, envelope format.CompressionType) ([]byte, error) {
	if envelope == format.CompressionNone {
		return append([]byte{byte(envelope)}, frame...), nil
	}

	codec, err := compress.CreateCodec(envelope, "relfloat-envelope")
	if err != nil {
		return nil, fmt.Errorf("container: creating envelope codec: %w", err)
	}

	compressed, err := codec.Compress(frame)
	if err != nil {
		return nil, fmt.Errorf("container: envelope compression failed: %w", err)
	}

	return append([]byte{byte(envelope)}, compressed...), nil
}

// Unwrap reads the envelope tag from blob and returns the underlying frame,
// decompressing it first if the tag calls for it.
func Unwrap(blob []byte) ([]byte, format.CompressionType, error) {
	if len(blob) < 1 {
		return nil, 0, fmt.Errorf("container: blob shorter than its envelope tag: %w", relerr.ErrMalformedInput)
	}

	envelope := format.CompressionType(blob[0])
	rest := blob[1:]

	if envelope == format.CompressionNone {
		return rest, envelope, nil
	}

	codec, err := compress.CreateCodec(envelope, "relfloat-envelope")
	if err != nil {
		return nil, 0, fmt.Errorf("container: unknown envelope tag %d: %w", blob[0], relerr.ErrMalformedInput)
	}

	frame, err := codec.Decompress(rest)
	if err != nil {
		return nil, 0, fmt.Errorf("container: envelope decompression failed: %w", err)
	}

	return frame, envelope, nil
}
