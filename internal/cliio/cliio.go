// Package cliio holds the small file-reading/writing helpers shared by the six
// command-line tools under cmd/: raw, headerless, little-endian float files, plus the
// tier-flag convention all the compress tools share.
package cliio

import (
	"fmt"
	"math"
	"os"

	"github.com/soltveit/relfloat"
	"github.com/soltveit/relfloat/endian"
)

const float32Size = 4
const float64Size = 8

// ReadFloat32File reads path as a back-to-back sequence of little-endian IEEE-754
// float32 values with no header.
func ReadFloat32File(path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(raw)%float32Size != 0 {
		return nil, fmt.Errorf("%s: length %d is not a multiple of %d bytes", path, len(raw), float32Size)
	}

	engine := endian.GetLittleEndianEngine()
	xs := make([]float32, len(raw)/float32Size)
	for i := range xs {
		xs[i] = math.Float32frombits(engine.Uint32(raw[i*float32Size:]))
	}

	return xs, nil
}

// WriteFloat32File writes xs to path as back-to-back little-endian float32 values.
func WriteFloat32File(path string, xs []float32) error {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, len(xs)*float32Size)
	for _, x := range xs {
		buf = engine.AppendUint32(buf, math.Float32bits(x))
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// ReadFloat64File reads path as a back-to-back sequence of little-endian IEEE-754
// float64 values with no header.
func ReadFloat64File(path string) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(raw)%float64Size != 0 {
		return nil, fmt.Errorf("%s: length %d is not a multiple of %d bytes", path, len(raw), float64Size)
	}

	engine := endian.GetLittleEndianEngine()
	xs := make([]float64, len(raw)/float64Size)
	for i := range xs {
		xs[i] = math.Float64frombits(engine.Uint64(raw[i*float64Size:]))
	}

	return xs, nil
}

// WriteFloat64File writes xs to path as back-to-back little-endian float64 values.
func WriteFloat64File(path string, xs []float64) error {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, len(xs)*float64Size)
	for _, x := range xs {
		buf = engine.AppendUint64(buf, math.Float64bits(x))
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// ReadBlob reads a compressed blob file verbatim.
func ReadBlob(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return raw, nil
}

// WriteBlob writes a compressed blob file verbatim.
func WriteBlob(path string, blob []byte) error {
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// CompareStats computes the mean and max absolute relative error between two
// equal-length float64 sequences, as the compareFloat/compareDouble tools report.
func CompareStats(a, b []float64) (mean, max float64, err error) {
	if len(a) != len(b) {
		return 0, 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, 0, nil
	}

	var sum float64
	for i := range a {
		if a[i] == 0 {
			continue // relative error is undefined at an exact zero; both sides round-trip it exactly
		}

		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		relative := d / absFloat64(a[i])

		sum += relative
		if relative > max {
			max = relative
		}
	}

	return sum / float64(len(a)), max, nil
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

// TierFromFlags resolves the -L/-M/-H tier flags: -L=HALF, -M=QUARTER, -H=TENTH,
// default -L. Passing more than one of them is a usage error.
func TierFromFlags(low, medium, high bool) (relfloat.Tier, error) {
	count := 0
	for _, b := range []bool{low, medium, high} {
		if b {
			count++
		}
	}
	if count > 1 {
		return 0, fmt.Errorf("only one of -L, -M, -H may be given")
	}

	switch {
	case high:
		return relfloat.TenthPercent, nil
	case medium:
		return relfloat.QuarterPercent, nil
	default:
		return relfloat.HalfPercent, nil
	}
}
