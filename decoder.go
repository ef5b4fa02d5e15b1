package huffman

import (
	"github.com/pkg/errors"
)

// DecodePayload walks t one bit at a time, starting from the root.  Each leaf
// reached is one decoded symbol: a byte is written to w and the walk starts
// over from the root, and EOF ends decoding successfully.  Bits after the
// EOF code, such as padding to a byte boundary, are never read.
//
// If r runs out before EOF is decoded, DecodePayload returns ErrTruncated.
//
// A root that is itself a leaf has the empty code.  If that leaf is EOF the
// payload is empty; any other symbol would repeat forever, so the tree is
// rejected with ErrDegenerateTree.
//
func DecodePayload(w BitWriter, r BitReader, t *Tree) error {
	root := t.nodes[t.root]
	if root.IsLeaf() {
		if root.Symbol == EOF {
			return nil
		}
		return errors.Wrapf(ErrDegenerateTree, "root is a leaf for symbol %d", root.Symbol)
	}

	var decoded int64
	current := root
	for {
		bit, err := r.ReadBits(1)
		if err != nil {
			return truncated(err, "after %d decoded bytes", decoded)
		}

		if bit == 0 {
			current = t.nodes[current.Left]
		} else {
			current = t.nodes[current.Right]
		}

		if !current.IsLeaf() {
			continue
		}

		switch {
		case current.Symbol == EOF:
			return nil
		case current.Symbol >= 0 && current.Symbol < AlphabetSize:
			if err := w.WriteBits(uint64(current.Symbol), BitsPerWord); err != nil {
				return errors.WithStack(err)
			}
		default:
			return errors.Wrapf(ErrInvalidSymbol, "decoded symbol %d", current.Symbol)
		}
		decoded++
		current = root
	}
}
