// Package deltakey implements the analyser that looks at a batch's bucket index
// sequence and picks which of the 18 codec keys will encode its deltas, without ever
// encoding a single bit. codec consumes its output; it does not import codec back.
package deltakey

// Key identifies one of the prefix-code variants codec knows how to encode and decode.
// Key 0 means "encode raw" (no delta coding); keys 1-17 select an increasingly wide
// Elias-like code, with even/odd pairs above 1 favoring a shorter code for +1 or -1
// deltas respectively.
type Key uint8

// maxCoverage is the largest single-step delta magnitude any key can represent (key
// 16/17, via a 4-bit suffix over a base of 5: 5+15 = 20). Analyse bails out to Key 0
// before even consulting the coverage table once a batch's widest delta exceeds 26 —
// a hair past what any key actually covers, since batches in the 21-26 range already
// fall through every coverage check below to the same Key 0 result.
const maxCoverage = 26

// coverage pairs a maximum representable delta magnitude with the two key indices that
// can encode it, ordered by increasing magnitude (and so, by increasing key index).
// The single key covering {0,±1} has no even/odd split since its +1 and -1 codewords
// are already equal length, so it is handled separately in Analyse.
var coverage = []struct {
	max       int
	plusShort Key
	minusShort Key
}{
	{2, 2, 3},
	{3, 4, 5},
	{4, 6, 7},
	{5, 8, 9},
	{6, 10, 11},
	{10, 12, 13},
	{12, 14, 15},
	{20, 16, 17},
}

// Analyse computes the signed deltas of consecutive bucket indices and selects the
// smallest-indexed key whose coverage contains both the widest positive step (M+) and
// the widest negative step's magnitude (M-), breaking ties between a key pair's two
// variants by which direction is more frequent: the "+1 short" (even) variant when
// count(+1) >= count(-1), otherwise the "-1 short" (odd) variant.
//
// indices must have length >= 2 (a batch with one or two samples is never delta-coded;
// the batcher handles those as a degenerate literal batch before this package is
// reached). A shorter slice returns Key 0.
func Analyse(indices []uint8) Key {
	if len(indices) < 2 {
		return 0
	}

	var maxPos, maxNeg, countPlus1, countMinus1 int
	for i := 1; i < len(indices); i++ {
		d := int(indices[i]) - int(indices[i-1])
		switch {
		case d > 0:
			if d > maxPos {
				maxPos = d
			}
			if d == 1 {
				countPlus1++
			}
		case d < 0:
			neg := -d
			if neg > maxNeg {
				maxNeg = neg
			}
			if neg == 1 {
				countMinus1++
			}
		}
	}

	widest := maxPos
	if maxNeg > widest {
		widest = maxNeg
	}

	if widest > maxCoverage {
		return 0
	}

	if widest <= 1 {
		return 1
	}

	for _, c := range coverage {
		if widest <= c.max {
			if countPlus1 >= countMinus1 {
				return c.plusShort
			}

			return c.minusShort
		}
	}

	return 0
}
