package codec

import "github.com/soltveit/relfloat/deltakey"

// codeword is a prefix-free bit pattern paired with its length. bits holds the
// codeword packed LSB-first in transmission order: the first bit sent occupies bit 0
// of bits, matching bitio's own LSB-first convention, so a codeword can be handed
// straight to a Writer.WriteBits call.
type codeword struct {
	bits uint64
	len  int
}

// code parses s, written the conventional way (first character is the first bit
// transmitted), into a codeword.
func code(s string) codeword {
	var v uint64
	for i, c := range s {
		if c == '1' {
			v |= 1 << uint(i)
		}
	}

	return codeword{bits: v, len: len(s)}
}

// overflowSpec describes one direction (positive or negative) of a key's "large
// magnitude" escape: a fixed prefix codeword followed by suffixBits raw bits encoding
// |delta| - base, LSB first.
type overflowSpec struct {
	prefix     codeword
	suffixBits int
	base       int
	sign       int
}

// maxMagnitude returns the widest |delta| this overflow path can represent.
func (o *overflowSpec) maxMagnitude() int {
	return o.base + (1 << uint(o.suffixBits)) - 1
}

// keyDef is one key's complete codebook: explicit codewords for small deltas (always
// including 0), plus an optional pair of overflow escapes for large magnitudes. trie
// is derived from the above once at init time and used for decoding.
type keyDef struct {
	codes       map[int]codeword
	posOverflow *overflowSpec
	negOverflow *overflowSpec
	trie        *trieNode
}

// pairShared is the part of a key pair's codebook that both variants share: every
// codeword except the one assigned to +1/-1, which swaps between the even ("+1
// short") and odd ("-1 short") member of the pair.
type pairShared struct {
	magPlus  map[int]string
	magNeg   map[int]string
	overflow *overflowTemplate
}

type overflowTemplate struct {
	posPrefix  string
	negPrefix  string
	suffixBits int
	base       int
}

var tables = map[deltakey.Key]*keyDef{}

func init() {
	tables[1] = buildKeyDef("10", "11", pairShared{})

	buildPair(2, 3, pairShared{
		magPlus: map[int]string{2: "1110"},
		magNeg:  map[int]string{2: "1111"},
	})
	buildPair(4, 5, pairShared{
		magPlus: map[int]string{2: "11100", 3: "11110"},
		magNeg:  map[int]string{2: "11101", 3: "11111"},
	})
	buildPair(6, 7, pairShared{
		magPlus: map[int]string{2: "11100", 3: "111100", 4: "111110"},
		magNeg:  map[int]string{2: "11101", 3: "111101", 4: "111111"},
	})
	buildPair(8, 9, pairShared{
		magPlus: map[int]string{2: "11100", 3: "111100", 4: "1111100", 5: "1111110"},
		magNeg:  map[int]string{2: "11101", 3: "111101", 4: "1111101", 5: "1111111"},
	})
	buildPair(10, 11, pairShared{
		magPlus:  map[int]string{2: "11100"},
		magNeg:   map[int]string{2: "11101"},
		overflow: &overflowTemplate{posPrefix: "11110", negPrefix: "11111", suffixBits: 2, base: 3},
	})
	buildPair(12, 13, pairShared{
		magPlus:  map[int]string{2: "11100"},
		magNeg:   map[int]string{2: "11101"},
		overflow: &overflowTemplate{posPrefix: "11110", negPrefix: "11111", suffixBits: 3, base: 3},
	})
	buildPair(14, 15, pairShared{
		magPlus:  map[int]string{2: "11100", 3: "111100", 4: "1111100"},
		magNeg:   map[int]string{2: "11101", 3: "111101", 4: "1111101"},
		overflow: &overflowTemplate{posPrefix: "1111110", negPrefix: "1111111", suffixBits: 3, base: 5},
	})
	buildPair(16, 17, pairShared{
		magPlus:  map[int]string{2: "11100", 3: "111100", 4: "1111100"},
		magNeg:   map[int]string{2: "11101", 3: "111101", 4: "1111101"},
		overflow: &overflowTemplate{posPrefix: "1111110", negPrefix: "1111111", suffixBits: 4, base: 5},
	})
}

// buildPair constructs both members of a key pair from one shared codebook: the even
// key gets "10" for +1 and "110" for -1 (the "+1 short" variant), the odd key swaps
// them.
func buildPair(even, odd deltakey.Key, shared pairShared) {
	tables[even] = buildKeyDef("10", "110", shared)
	tables[odd] = buildKeyDef("110", "10", shared)
}

func buildKeyDef(plus1, minus1 string, shared pairShared) *keyDef {
	codes := map[int]codeword{
		0:  code("0"),
		1:  code(plus1),
		-1: code(minus1),
	}
	for mag, s := range shared.magPlus {
		codes[mag] = code(s)
	}
	for mag, s := range shared.magNeg {
		codes[-mag] = code(s)
	}

	def := &keyDef{codes: codes}
	if shared.overflow != nil {
		def.posOverflow = &overflowSpec{
			prefix:     code(shared.overflow.posPrefix),
			suffixBits: shared.overflow.suffixBits,
			base:       shared.overflow.base,
			sign:       1,
		}
		def.negOverflow = &overflowSpec{
			prefix:     code(shared.overflow.negPrefix),
			suffixBits: shared.overflow.suffixBits,
			base:       shared.overflow.base,
			sign:       -1,
		}
	}
	def.trie = buildTrie(def)

	return def
}

// maxCodeBits is an upper bound on the number of bits any single delta can cost under
// any defined key (key 17's large-magnitude escape: a 7-bit prefix plus a 4-bit
// suffix). Encode uses it to size its scratch buffer generously before trimming to
// the actual bit length written.
const maxCodeBits = 11

// encode returns the codeword for delta d under this key definition, as a
// (value, bit length) pair ready for bitio.Writer.WriteBits, or an error if d is wider
// than anything this key can represent.
func (d *keyDef) encode(delta int) (uint64, int, error) {
	if cw, ok := d.codes[delta]; ok {
		return cw.bits, cw.len, nil
	}

	var ov *overflowSpec
	mag := delta
	if delta > 0 {
		ov = d.posOverflow
	} else {
		ov = d.negOverflow
		mag = -delta
	}

	if ov == nil || mag < ov.base || mag > ov.maxMagnitude() {
		return 0, 0, errDeltaOutOfRange
	}

	suffix := uint64(mag - ov.base)
	bits := ov.prefix.bits | suffix<<uint(ov.prefix.len)
	n := ov.prefix.len + ov.suffixBits

	return bits, n, nil
}
