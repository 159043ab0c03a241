// Package codec encodes and decodes a bucket index sequence under one of the
// delta-coding keys (1-17) the deltakey package chooses, as a self-contained payload.
// Key 0, the raw path, is not handled here. Package buckets feeds it
// bucket indices; package container frames its output inside a batch.
//
// The codeword table lives entirely as data (table.go), built once at init time into
// both an encode lookup and a decode trie, instead of a hand-written switch statement
// for each direction.
package codec

import (
	"fmt"

	"github.com/soltveit/relfloat/bitio"
	"github.com/soltveit/relfloat/deltakey"
	"github.com/soltveit/relfloat/endian"
	"github.com/soltveit/relfloat/internal/pool"
	"github.com/soltveit/relfloat/internal/relerr"
)

var (
	// errDeltaOutOfRange marks a delta wider than the active key can represent — a
	// programmer error (the analyser should never have chosen this key for this
	// sequence), signalled the same way as an unknown key.
	errDeltaOutOfRange = fmt.Errorf("codec: delta out of range for key: %w", relerr.ErrInternalInvariant)

	// errUnknownKey marks an encode or decode call made with a key outside {0..17}.
	errUnknownKey = fmt.Errorf("codec: unknown key: %w", relerr.ErrInternalInvariant)

	// errMalformedCodeword marks a decode walk falling off the trie, meaning the
	// payload bytes do not contain a valid sequence of codewords for the given key.
	errMalformedCodeword = fmt.Errorf("codec: malformed codeword in payload: %w", relerr.ErrMalformedInput)

	// errEmptySentinel marks an encoded-length-0 payload, either produced by Encode on
	// failure or encountered by Decode on a corrupt blob.
	errEmptySentinel = fmt.Errorf("codec: encoded length sentinel is 0: %w", relerr.ErrMalformedInput)
)

// sentinelPayload is what Encode returns alongside an error: a 2-byte length field of
// 0, signaling to a downstream decoder that an unknown key or an out-of-range delta
// prevented encoding.
var sentinelPayload = []byte{0, 0}

// Encode encodes indices (len(indices) >= 1) under key, which must be in {1..17} (key
// 0 is the raw path and is handled directly by the container package, not here).
//
// The returned payload is self-contained: a little-endian u16 total length (counting
// itself), the first index stored as a literal seed byte, then the delta-coded bits
// for the remaining indices with any trailing bits in the last byte cleared.
func Encode(indices []uint8, key deltakey.Key) ([]byte, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("codec: cannot encode an empty index sequence: %w", relerr.ErrMalformedInput)
	}

	def, ok := tables[key]
	if !ok {
		return sentinelPayload, errUnknownKey
	}

	scratch := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(scratch)
	scratch.ExtendOrGrow((len(indices)-1)*maxCodeBits/8 + 2)
	bitBuf := scratch.Bytes()
	w := bitio.NewWriter(bitBuf)

	prev := int(indices[0])
	for i := 1; i < len(indices); i++ {
		cur := int(indices[i])
		bits, n, err := def.encode(cur - prev)
		if err != nil {
			return sentinelPayload, err
		}
		w.WriteBits(bits, n)
		prev = cur
	}
	w.ClearTail()

	bitBytes := bitBuf[:w.ByteLen()]
	total := 2 + 1 + len(bitBytes)
	out := make([]byte, total)

	engine := endian.GetLittleEndianEngine()
	engine.PutUint16(out[0:2], uint16(total)) //nolint:gosec // payload length is bounded well under 1<<16 by batch length limits

	out[2] = indices[0]
	copy(out[3:], bitBytes)

	return out, nil
}

// Decode reverses Encode: payload must be the full self-contained payload (including
// its leading length field), key selects the codebook, and count is the number of
// bucket indices the caller expects back (the batch's length).
func Decode(payload []byte, key deltakey.Key, count int) ([]uint8, error) {
	if count <= 0 {
		return nil, fmt.Errorf("codec: non-positive element count: %w", relerr.ErrMalformedInput)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("codec: payload shorter than its length field: %w", relerr.ErrMalformedInput)
	}

	length := endian.GetLittleEndianEngine().Uint16(payload[0:2])
	if length == 0 {
		return nil, errEmptySentinel
	}
	if int(length) > len(payload) {
		return nil, fmt.Errorf("codec: declared payload length %d exceeds available %d bytes: %w", length, len(payload), relerr.ErrMalformedInput)
	}
	if length < 3 {
		return nil, fmt.Errorf("codec: payload too short to hold a seed byte: %w", relerr.ErrMalformedInput)
	}

	def, ok := tables[key]
	if !ok {
		return nil, errUnknownKey
	}

	seed := payload[2]
	bits := payload[3:length]
	r := bitio.NewReader(bits)

	out := make([]uint8, count)
	out[0] = seed

	prev := int(seed)
	for i := 1; i < count; i++ {
		delta, err := def.decode(r)
		if err != nil {
			return nil, err
		}

		cur := prev + delta
		out[i] = uint8(cur) //nolint:gosec // analyser range checks bound cur to a valid bucket index
		prev = cur
	}

	return out, nil
}
