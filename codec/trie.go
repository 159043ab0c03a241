package codec

import "github.com/soltveit/relfloat/bitio"

// trieNode is one node of the per-key decode trie, built once at init from the same
// codeword data encode uses, so encode and decode can never drift apart: there is no
// second, hand-maintained copy of the codeword table for decoding.
type trieNode struct {
	leaf       bool
	delta      int
	overflow   bool
	sign       int
	base       int
	suffixBits int
	children   [2]*trieNode
}

func buildTrie(def *keyDef) *trieNode {
	root := &trieNode{}

	for delta, cw := range def.codes {
		insert(root, cw, trieNode{leaf: true, delta: delta})
	}
	if def.posOverflow != nil {
		insert(root, def.posOverflow.prefix, trieNode{
			leaf: true, overflow: true,
			sign: def.posOverflow.sign, base: def.posOverflow.base, suffixBits: def.posOverflow.suffixBits,
		})
	}
	if def.negOverflow != nil {
		insert(root, def.negOverflow.prefix, trieNode{
			leaf: true, overflow: true,
			sign: def.negOverflow.sign, base: def.negOverflow.base, suffixBits: def.negOverflow.suffixBits,
		})
	}

	return root
}

func insert(root *trieNode, cw codeword, leaf trieNode) {
	node := root
	for i := 0; i < cw.len; i++ {
		bit := (cw.bits >> uint(i)) & 1
		if node.children[bit] == nil {
			node.children[bit] = &trieNode{}
		}
		node = node.children[bit]
	}

	*node = leaf
}

// decode walks the trie one bit at a time until it reaches a leaf, then (for an
// overflow leaf) consumes the leaf's suffix bits to recover the full delta magnitude.
func (d *keyDef) decode(r *bitio.Reader) (int, error) {
	node := d.trie
	for !node.leaf {
		b := r.ReadBit()
		next := node.children[b]
		if next == nil {
			return 0, errMalformedCodeword
		}
		node = next
	}

	if !node.overflow {
		return node.delta, nil
	}

	suffix := r.ReadBits(node.suffixBits)

	return node.sign * (node.base + int(suffix)), nil
}
