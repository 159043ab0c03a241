package container

import (
	"testing"

	"github.com/soltveit/relfloat/buckets"
	"github.com/soltveit/relfloat/format"
	"github.com/stretchr/testify/require"
)

func relErr(got, want float32) float32 {
	d := got - want
	if d < 0 {
		d = -d
	}

	return d / want
}

func TestEncodeDecodeFrameRoundTripExactDegenerate(t *testing.T) {
	frame, err := EncodeFrame([]float32{1.0}, buckets.HalfPercent, Single)
	require.NoError(t, err)

	out, tier, precision, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.Equal(t, buckets.HalfPercent, tier)
	require.Equal(t, Single, precision)
	require.Equal(t, []float32{1.0}, out)
}

func TestEncodeDecodeFrameTwoElementDegenerate(t *testing.T) {
	frame, err := EncodeFrame([]float32{1.0, 1.5}, buckets.HalfPercent, Single)
	require.NoError(t, err)

	out, _, _, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.Equal(t, []float32{1.0, 1.5}, out)
}

func TestEncodeDecodeFrameWithinTargetError(t *testing.T) {
	xs := []float32{1.0, 1.1, 1.2, 1.3, 1.4, 1.5}
	frame, err := EncodeFrame(xs, buckets.HalfPercent, Single)
	require.NoError(t, err)

	out, _, _, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.Len(t, out, len(xs))
	for i, x := range xs {
		require.LessOrEqualf(t, relErr(out[i], x), float32(0.011), "sample %d", i)
	}
}

func TestEncodeDecodeFrameInterleavedZeros(t *testing.T) {
	xs := []float32{0.0, 1.0, 0.0, 2.0}
	frame, err := EncodeFrame(xs, buckets.QuarterPercent, Single)
	require.NoError(t, err)

	out, _, _, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.Equal(t, xs, out)
}

func TestEncodeDecodeFrameEmptyInput(t *testing.T) {
	frame, err := EncodeFrame(nil, buckets.HalfPercent, Single)
	require.NoError(t, err)

	out, _, _, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFrameSelfDescribesItsOwnLength(t *testing.T) {
	frame, err := EncodeFrame([]float32{1.0, 2.5, 3.25, 1.1}, buckets.TenthPercent, Single)
	require.NoError(t, err)

	declared := uint32(frame[0]) | uint32(frame[1])<<8 | uint32(frame[2])<<16 | uint32(frame[3])<<24
	require.Equal(t, uint32(len(frame)), declared)
}

func TestDecodeFrameRejectsLengthMismatch(t *testing.T) {
	frame, err := EncodeFrame([]float32{1.0}, buckets.HalfPercent, Single)
	require.NoError(t, err)

	corrupt := append([]byte{}, frame...)
	corrupt = append(corrupt, 0xFF) // extra trailing byte, declared length now wrong

	_, _, _, err = DecodeFrame(corrupt)
	require.Error(t, err)
}

func TestDecodeFrameRejectsBadMetadata(t *testing.T) {
	frame, err := EncodeFrame([]float32{1.0}, buckets.HalfPercent, Single)
	require.NoError(t, err)

	corrupt := append([]byte{}, frame...)
	corrupt[4] = 0xFF // tier bits now out of range
	corrupt[5] = 0xFF

	_, _, _, err = DecodeFrame(corrupt)
	require.Error(t, err)
}

func TestEnvelopeRoundTripNone(t *testing.T) {
	frame, err := EncodeFrame([]float32{1.0, 1.5}, buckets.HalfPercent, Single)
	require.NoError(t, err)

	blob, err := Wrap(frame, format.CompressionNone)
	require.NoError(t, err)

	out, envelope, err := Unwrap(blob)
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, envelope)
	require.Equal(t, frame, out)
}

func TestEnvelopeRoundTripZstd(t *testing.T) {
	xs := make([]float32, 1000)
	for i := range xs {
		xs[i] = 1.0 + float32(i%100)*0.0001
	}
	frame, err := EncodeFrame(xs, buckets.TenthPercent, Single)
	require.NoError(t, err)

	blob, err := Wrap(frame, format.CompressionZstd)
	require.NoError(t, err)

	out, envelope, err := Unwrap(blob)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, envelope)
	require.Equal(t, frame, out)
}

func TestUnwrapRejectsUnknownTag(t *testing.T) {
	_, _, err := Unwrap([]byte{0x09, 0x01, 0x02})
	require.Error(t, err)
}
