// Package container frames a batched, bucketised, delta-coded sequence into the
// on-disk blob layout, and the inverse. It is the only package that understands the
// byte-exact frame layout; everything above it works in terms of samples, batches,
// and bucket indices.
package container

import (
	"fmt"
	"math"

	"github.com/soltveit/relfloat/batch"
	"github.com/soltveit/relfloat/buckets"
	"github.com/soltveit/relfloat/codec"
	"github.com/soltveit/relfloat/deltakey"
	"github.com/soltveit/relfloat/endian"
	"github.com/soltveit/relfloat/internal/relerr"
)

// Precision records which source width produced a frame, baked into the frame's
// metadata field so decompression can hand the caller back the matching width.
type Precision uint8

const (
	Single Precision = 0
	Double Precision = 1
)

// frameHeaderSize is the fixed 16-byte header: total_byte_length, metadata,
// element_count, batch_count, each a u32.
const frameHeaderSize = 16

// EncodeFrame runs the full compression pipeline (batch -> bucketise -> pick key ->
// encode) over xs and serializes the result as a frame: a self-contained,
// self-describing byte buffer whose first four bytes are its own length.
func EncodeFrame(xs []float32, tier buckets.Tier, precision Precision) ([]byte, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("container: invalid tier %v: %w", tier, relerr.ErrInternalInvariant)
	}

	engine := endian.GetLittleEndianEngine()
	bs := batch.Split(xs)

	buf := make([]byte, 0, frameHeaderSize+len(xs)*2)
	buf = engine.AppendUint32(buf, 0) // placeholder, patched below
	buf = engine.AppendUint32(buf, uint32(tier)|uint32(precision)<<3)
	buf = engine.AppendUint32(buf, uint32(len(xs)))
	buf = engine.AppendUint32(buf, uint32(len(bs)))

	for _, b := range bs {
		var err error
		buf, err = appendBatch(buf, engine, b, tier)
		if err != nil {
			return nil, err
		}
	}

	engine.PutUint32(buf[0:4], uint32(len(buf)))

	return buf, nil
}

func appendBatch(buf []byte, engine endian.EndianEngine, b batch.Batch, tier buckets.Tier) ([]byte, error) {
	l := len(b.Samples)
	if l == 0 || l > batch.MaxLength {
		return nil, fmt.Errorf("container: batch length %d out of range: %w", l, relerr.ErrInternalInvariant)
	}

	buf = engine.AppendUint16(buf, uint16(l)) //nolint:gosec // bounded by batch.MaxLength above

	switch {
	case l == 1:
		buf = engine.AppendUint32(buf, math.Float32bits(b.Samples[0]))
	case l == 2:
		buf = engine.AppendUint32(buf, math.Float32bits(b.Samples[0]))
		buf = engine.AppendUint32(buf, math.Float32bits(b.Samples[1]))
	default:
		indices, err := buckets.Bucketize(b.Samples, b.Max, b.Min, tier)
		if err != nil {
			return nil, err
		}

		key := deltakey.Analyse(indices)

		buf = engine.AppendUint32(buf, math.Float32bits(b.Max))
		buf = engine.AppendUint32(buf, math.Float32bits(b.Min))
		buf = append(buf, uint8(key))

		if key == 0 {
			buf = append(buf, indices...)
		} else {
			payload, err := codec.Encode(indices, key)
			if err != nil {
				return nil, err
			}
			buf = append(buf, payload...)
		}
	}

	return buf, nil
}

// DecodeFrame validates and decodes a frame, returning the reconstructed samples
// (still single-precision — widening to float64 is the caller's job when precision
// reports Double) plus the tier and precision the frame was produced with.
func DecodeFrame(frame []byte) ([]float32, buckets.Tier, Precision, error) {
	engine := endian.GetLittleEndianEngine()

	if len(frame) < frameHeaderSize {
		return nil, 0, 0, fmt.Errorf("container: frame shorter than its header: %w", relerr.ErrMalformedInput)
	}

	totalLen := engine.Uint32(frame[0:4])
	if int(totalLen) != len(frame) {
		return nil, 0, 0, fmt.Errorf("container: declared length %d does not match actual %d: %w", totalLen, len(frame), relerr.ErrMalformedInput)
	}

	metadata := engine.Uint32(frame[4:8])
	tierBits := metadata & 0x7
	precBits := (metadata >> 3) & 0x7
	if metadata>>6 != 0 || tierBits > uint32(buckets.TenthPercent) || precBits > uint32(Double) {
		return nil, 0, 0, fmt.Errorf("container: metadata %#x outside defined tier/precision set: %w", metadata, relerr.ErrMalformedInput)
	}
	tier := buckets.Tier(tierBits)
	precision := Precision(precBits)

	elementCount := engine.Uint32(frame[8:12])
	batchCount := engine.Uint32(frame[12:16])

	samples := make([]float32, 0, elementCount)
	pos := frameHeaderSize
	var total uint32

	for i := uint32(0); i < batchCount; i++ {
		vals, next, err := decodeBatch(frame, pos, engine, tier)
		if err != nil {
			return nil, 0, 0, err
		}

		samples = append(samples, vals...)
		total += uint32(len(vals))
		pos = next
	}

	if total != elementCount {
		return nil, 0, 0, fmt.Errorf("container: batch lengths sum to %d, header declares %d: %w", total, elementCount, relerr.ErrMalformedInput)
	}

	return samples, tier, precision, nil
}

func decodeBatch(frame []byte, pos int, engine endian.EndianEngine, tier buckets.Tier) ([]float32, int, error) {
	if pos+2 > len(frame) {
		return nil, 0, fmt.Errorf("container: truncated batch length field: %w", relerr.ErrMalformedInput)
	}
	l := int(engine.Uint16(frame[pos : pos+2]))
	pos += 2

	if l == 0 {
		return nil, 0, fmt.Errorf("container: batch length 0: %w", relerr.ErrMalformedInput)
	}

	switch {
	case l == 1:
		if pos+4 > len(frame) {
			return nil, 0, fmt.Errorf("container: truncated literal sample: %w", relerr.ErrMalformedInput)
		}
		v := math.Float32frombits(engine.Uint32(frame[pos : pos+4]))

		return []float32{v}, pos + 4, nil

	case l == 2:
		if pos+8 > len(frame) {
			return nil, 0, fmt.Errorf("container: truncated literal samples: %w", relerr.ErrMalformedInput)
		}
		v0 := math.Float32frombits(engine.Uint32(frame[pos : pos+4]))
		v1 := math.Float32frombits(engine.Uint32(frame[pos+4 : pos+8]))

		return []float32{v0, v1}, pos + 8, nil

	default:
		if pos+9 > len(frame) {
			return nil, 0, fmt.Errorf("container: truncated batch extrema/key: %w", relerr.ErrMalformedInput)
		}
		max := math.Float32frombits(engine.Uint32(frame[pos : pos+4]))
		min := math.Float32frombits(engine.Uint32(frame[pos+4 : pos+8]))
		key := deltakey.Key(frame[pos+8])
		pos += 9

		var indices []uint8
		if key == 0 {
			if pos+l > len(frame) {
				return nil, 0, fmt.Errorf("container: truncated raw bucket indices: %w", relerr.ErrMalformedInput)
			}
			indices = frame[pos : pos+l]
			pos += l
		} else {
			if pos+2 > len(frame) {
				return nil, 0, fmt.Errorf("container: truncated payload length field: %w", relerr.ErrMalformedInput)
			}
			payloadLen := int(engine.Uint16(frame[pos : pos+2]))
			if payloadLen == 0 {
				return nil, 0, fmt.Errorf("container: encoded length sentinel: %w", relerr.ErrMalformedInput)
			}
			if pos+payloadLen > len(frame) {
				return nil, 0, fmt.Errorf("container: truncated payload: %w", relerr.ErrMalformedInput)
			}

			var err error
			indices, err = codec.Decode(frame[pos:pos+payloadLen], key, l)
			if err != nil {
				return nil, 0, err
			}
			pos += payloadLen
		}

		return buckets.UnbucketizeF32(indices, min, tier), pos, nil
	}
}
