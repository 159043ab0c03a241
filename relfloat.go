// Package relfloat compresses sequences of strictly positive IEEE-754 floats into a
// compact, lossy, self-describing blob, and decompresses them back, bounding the
// relative error of every sample to the chosen accuracy tier's promise.
//
// The pipeline is: batch the input by relative range (package batch), quantize each
// batch onto a logarithmic bucket table (package buckets), pick a delta-coding key
// for the bucket sequence (package deltakey), encode it with a prefix code (package
// codec), and frame the result (package container). This package is the thin public
// wrapper over that pipeline — see container.EncodeFrame/DecodeFrame for the byte
// layout.
package relfloat

import (
	"fmt"

	"github.com/soltveit/relfloat/buckets"
	"github.com/soltveit/relfloat/container"
	"github.com/soltveit/relfloat/format"
	"github.com/soltveit/relfloat/internal/relerr"
)

// Tier selects an accuracy tier: HalfPercent, QuarterPercent, or TenthPercent.
type Tier = buckets.Tier

const (
	HalfPercent    = buckets.HalfPercent
	QuarterPercent = buckets.QuarterPercent
	TenthPercent   = buckets.TenthPercent
)

// Precision records whether a blob was produced from float32 or float64 samples.
type Precision = container.Precision

const (
	Single = container.Single
	Double = container.Double
)

// Envelope selects the optional secondary byte-compressor wrapped around a produced
// frame. EnvelopeNone, the default, costs one byte and changes nothing else about the
// blob.
type Envelope = format.CompressionType

const (
	EnvelopeNone = format.CompressionNone
	EnvelopeZstd = format.CompressionZstd
	EnvelopeS2   = format.CompressionS2
	EnvelopeLZ4  = format.CompressionLZ4
)

// Blob is an owned, self-describing compressed byte buffer, immutable once produced:
// its first byte is the envelope tag, followed by the frame (or the envelope-compressed
// frame), whose own first four bytes hold the frame's length.
type Blob []byte

// CompressedLength returns the blob's own byte length. It is a method rather than a
// free function that parses offset 0, because the envelope tag byte means offset 0
// no longer always holds a raw length field the way a bare frame's does; a Blob
// already knows its own length by construction, which is the only thing any caller
// actually needs.
func (b Blob) CompressedLength() uint32 {
	return uint32(len(b)) //nolint:gosec // blob sizes are bounded by the 65535-samples-per-batch invariant
}

type compressConfig struct {
	envelope Envelope
	tier     Tier
}

// CompressOption configures CompressF32/CompressF64 beyond their positional tier
// argument, in the usual functional-options style.
type CompressOption func(*compressConfig)

// WithEnvelope wraps the produced frame in the given secondary byte compressor.
func WithEnvelope(e Envelope) CompressOption {
	return func(c *compressConfig) { c.envelope = e }
}

// WithTier overrides the tier passed positionally to CompressF32/CompressF64. Prefer
// the positional argument for ordinary calls; this exists for call sites assembling
// a set of options dynamically alongside WithEnvelope.
func WithTier(t Tier) CompressOption {
	return func(c *compressConfig) { c.tier = t }
}

func resolveConfig(tier Tier, opts []CompressOption) compressConfig {
	cfg := compressConfig{envelope: EnvelopeNone, tier: tier}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// CompressF32 compresses xs, which must contain only strictly positive values (with
// an allowance for exact zeros — see Non-goals), at the given accuracy tier.
func CompressF32(xs []float32, tier Tier, opts ...CompressOption) (Blob, error) {
	cfg := resolveConfig(tier, opts)

	frame, err := container.EncodeFrame(xs, cfg.tier, container.Single)
	if err != nil {
		return nil, err
	}

	blob, err := container.Wrap(frame, cfg.envelope)
	if err != nil {
		return nil, err
	}

	return Blob(blob), nil
}

// CompressF64 narrows xs to float32 before running the same pipeline as CompressF32:
// all internal arithmetic is single-precision. The precision tag baked into the
// resulting blob tells Decompress to widen the reconstructed samples back to
// float64 — representational only, since no precision beyond float32 was ever
// retained.
func CompressF64(xs []float64, tier Tier, opts ...CompressOption) (Blob, error) {
	narrowed := make([]float32, len(xs))
	for i, x := range xs {
		narrowed[i] = float32(x)
	}

	cfg := resolveConfig(tier, opts)

	frame, err := container.EncodeFrame(narrowed, cfg.tier, container.Double)
	if err != nil {
		return nil, err
	}

	blob, err := container.Wrap(frame, cfg.envelope)
	if err != nil {
		return nil, err
	}

	return Blob(blob), nil
}

// Result is what Decompress returns: the reconstructed samples at whichever width the
// blob's precision tag records. Exactly one of Float32 or Float64 is populated.
type Result struct {
	Precision Precision
	Float32   []float32
	Float64   []float64
}

// Decompress reverses CompressF32/CompressF64: it reads the envelope tag, unwraps the
// secondary compressor if one was used, then decodes the frame underneath.
func Decompress(blob []byte) (Result, error) {
	frame, _, err := container.Unwrap(blob)
	if err != nil {
		return Result{}, err
	}

	samples, _, precision, err := container.DecodeFrame(frame)
	if err != nil {
		return Result{}, err
	}

	if precision == Double {
		widened := make([]float64, len(samples))
		for i, v := range samples {
			widened[i] = float64(v)
		}

		return Result{Precision: precision, Float64: widened}, nil
	}

	return Result{Precision: precision, Float32: samples}, nil
}

// CompressedLength reads the compressed length of blob without decoding it. The
// secondary envelope means the frame's own internal length field no longer always
// matches the outer blob's length once a compressor has been applied, so this simply
// reports len(blob) — by construction that is always the right answer and costs
// nothing to compute.
func CompressedLength(blob []byte) (uint32, error) {
	if len(blob) == 0 {
		return 0, fmt.Errorf("relfloat: empty blob: %w", relerr.ErrMalformedInput)
	}

	return uint32(len(blob)), nil //nolint:gosec // bounded by the same invariant as Blob.CompressedLength
}
