package buckets

import (
	"fmt"

	"github.com/soltveit/relfloat/internal/relerr"
)

// ErrOutOfRange is returned when a bucketiser is asked to map a value that, after
// normalization, falls outside [1.0, 2.0) — an internal invariant violation that
// should only ever surface if an upstream caller (the batcher) handed the bucketiser
// a batch whose max/min ratio invariant does not hold. It is an alias of
// relerr.ErrOutOfRange so callers anywhere in the module can test for it uniformly.
var ErrOutOfRange = relerr.ErrOutOfRange

// ValueToBucket maps v, which must lie in [1.0, 2.0), to the smallest bucket index i
// such that v < table[i]. It returns InvalidBucket and ErrOutOfRange if v is outside
// that domain.
//
// A linear scan is used rather than a binary search: both produce identical results,
// and tables top out at a couple hundred entries, so the scan cost is negligible next
// to the bit-level work this function feeds into.
func ValueToBucket(v float32, tier Tier) (uint8, error) {
	if v < 1.0 || v >= 2.0 {
		return InvalidBucket, ErrOutOfRange
	}

	table := tables[tier]
	for i, b := range table {
		if v < b {
			return uint8(i), nil //nolint:gosec // table length is bounded by MaxBucketIndex
		}
	}

	// Unreachable in practice: the last table entry is always exactly 2.0, and v is
	// guaranteed < 2.0 above.
	return InvalidBucket, ErrOutOfRange
}

// BucketToValue returns the midpoint of bucket i's interval: (lo+hi)/2, where
// hi = table[i] and lo = table[i-1] (or 1.0 for i == 0).
func BucketToValue(i uint8, tier Tier) float32 {
	table := tables[tier]
	hi := table[i]

	var lo float32 = 1.0
	if i > 0 {
		lo = table[i-1]
	}

	return (lo + hi) / 2
}

// upperClamp is substituted for a value that rounds up to exactly 2.0 at the upper
// edge of the normalized range, guarding against the bucketiser rejecting a sample
// that the batcher legitimately included.
const upperClamp float32 = 1.9999999

// Bucketize maps each sample in xs to its bucket index, after normalizing by min.
//
// Precondition: max < 2*min && min > 0 (the batch invariant), where max and min
// are the batch's actual extrema — not necessarily xs[0] and xs[len-1].
//
// For each x, v = x/min is clamped to upperClamp if it rounds up to >= 2.0 (guarding
// floating-point rounding at the upper edge of the batch), and it is an error if
// v < 1.0 (which would indicate min was not in fact the batch minimum).
func Bucketize(xs []float32, max, min float32, tier Tier) ([]uint8, error) {
	if !(max < 2*min) || min <= 0 {
		return nil, fmt.Errorf("buckets: invalid batch extrema (max=%v, min=%v): %w", max, min, ErrOutOfRange)
	}

	out := make([]uint8, len(xs))
	for idx, x := range xs {
		v := x / min
		if v >= 2.0 {
			v = upperClamp
		}
		if v < 1.0 {
			return nil, fmt.Errorf("buckets: sample %v normalizes below 1.0 (min=%v): %w", x, min, ErrOutOfRange)
		}

		b, err := ValueToBucket(v, tier)
		if err != nil {
			return nil, err
		}
		out[idx] = b
	}

	return out, nil
}

// UnbucketizeF32 reconstructs the approximated float32 samples for a sequence of
// bucket indices produced by Bucketize, rescaling each bucket midpoint by min.
func UnbucketizeF32(indices []uint8, min float32, tier Tier) []float32 {
	out := make([]float32, len(indices))
	for i, idx := range indices {
		out[i] = BucketToValue(idx, tier) * min
	}

	return out
}

// UnbucketizeF64 is UnbucketizeF32 widened to float64. This is representational
// only: no additional precision is recovered by the widening, since all internal
// arithmetic that produced the bucket indices was already single precision.
func UnbucketizeF64(indices []uint8, min float32, tier Tier) []float64 {
	out := make([]float64, len(indices))
	for i, idx := range indices {
		out[i] = float64(BucketToValue(idx, tier) * min)
	}

	return out
}
