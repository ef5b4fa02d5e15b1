package huffman

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Magic numbers identifying the header format.
const (
	// MagicNumber is the legacy magic for the tree layout.  It is
	// accepted on read but never written.
	MagicNumber uint32 = 0xface8200

	// MagicTree identifies a pre-order tree header.
	MagicTree = MagicNumber | 1

	// MagicCounts identifies a per-symbol count header.
	MagicCounts = MagicNumber | 2
)

// HeaderFormat selects how the code tree is transmitted.
type HeaderFormat byte

const (
	// TreeHeader writes the tree itself in pre-order.
	TreeHeader HeaderFormat = iota

	// CountHeader would write raw symbol counts.  Its layout is not
	// defined, and both Compress and ReadHeader reject it with
	// ErrUnsupportedHeader.
	CountHeader
)

var headerFormatNames = [...]string{"tree", "counts"}

// Magic returns the magic number that introduces this format.
func (hf HeaderFormat) Magic() uint32 {
	switch hf {
	case TreeHeader:
		return MagicTree
	case CountHeader:
		return MagicCounts
	default:
		return 0
	}
}

// String returns the name of this format.
func (hf HeaderFormat) String() string {
	if int(hf) < len(headerFormatNames) {
		return headerFormatNames[hf]
	}
	return "HeaderFormat(" + strconv.Itoa(int(hf)) + ")"
}

// Set parses a format name.  Together with String, this makes *HeaderFormat
// usable as a flag.Value.
func (hf *HeaderFormat) Set(str string) error {
	for index, name := range headerFormatNames {
		if strings.EqualFold(str, name) {
			*hf = HeaderFormat(index)
			return nil
		}
	}
	return errors.Errorf("huffman: unknown header format %q", str)
}

// WriteHeader writes the tree magic followed by the tree in pre-order: an
// internal node is a 0 bit followed by its left and right subtrees, and a
// leaf is a 1 bit followed by its symbol in SymbolBits bits.
func WriteHeader(w BitWriter, t *Tree) error {
	if err := w.WriteBits(uint64(MagicTree), BitsPerInt); err != nil {
		return errors.WithStack(err)
	}

	stack := make([]NodeID, 0, 2*log2uint32(uint32(len(t.nodes))))
	stack = append(stack, t.root)
	for len(stack) != 0 {
		last := len(stack) - 1
		node := t.nodes[stack[last]]
		stack = stack[:last]

		if node.IsLeaf() {
			v := uint64(1)<<SymbolBits | uint64(node.Symbol)
			if err := w.WriteBits(v, 1+SymbolBits); err != nil {
				return errors.WithStack(err)
			}
			continue
		}

		if err := w.WriteBits(0, 1); err != nil {
			return errors.WithStack(err)
		}
		stack = append(stack, node.Right, node.Left)
	}
	return nil
}

// ReadMagic reads the 32-bit magic number and returns the format it names.
// The legacy MagicNumber reads as TreeHeader.
func ReadMagic(r BitReader) (HeaderFormat, error) {
	v, err := r.ReadBits(BitsPerInt)
	if err != nil {
		return 0, truncated(err, "reading magic number")
	}
	switch uint32(v) {
	case MagicNumber, MagicTree:
		return TreeHeader, nil
	case MagicCounts:
		return CountHeader, nil
	default:
		return 0, errors.Wrapf(ErrMalformedMagic, "got %#08x", v)
	}
}

// ReadHeader reads a header written by WriteHeader and rebuilds the tree.
// It consumes exactly the bits that WriteHeader produced.  The returned tree
// carries no weights.
func ReadHeader(r BitReader) (*Tree, error) {
	format, err := ReadMagic(r)
	if err != nil {
		return nil, err
	}
	if format != TreeHeader {
		return nil, errors.Wrapf(ErrUnsupportedHeader, "%s header", format)
	}
	return readTree(r)
}

func readTree(r BitReader) (*Tree, error) {
	t := &Tree{nodes: make([]Node, 0, maxTreeNodes), root: NoNode}

	// Each stack entry is an internal node still waiting for a child.
	// Once its right child is attached it needs nothing more and is
	// popped.
	type stackItem struct {
		id       NodeID
		haveLeft bool
	}

	var stack []stackItem
	for {
		if len(t.nodes) == maxTreeNodes {
			return nil, errors.Wrapf(ErrTreeTooLarge, "more than %d nodes", maxTreeNodes)
		}

		flag, err := r.ReadBits(1)
		if err != nil {
			return nil, truncated(err, "reading tree node %d", len(t.nodes))
		}

		var id NodeID
		if flag == 1 {
			v, err := r.ReadBits(SymbolBits)
			if err != nil {
				return nil, truncated(err, "reading symbol of tree node %d", len(t.nodes))
			}
			symbol := Symbol(v)
			if !symbol.IsValid() {
				return nil, errors.Wrapf(ErrInvalidSymbol, "tree node %d has symbol %d", len(t.nodes), v)
			}
			id = t.addLeaf(symbol, 0)
		} else {
			id = NodeID(len(t.nodes))
			t.nodes = append(t.nodes, Node{Symbol: InvalidSymbol, Left: NoNode, Right: NoNode})
		}

		if len(stack) == 0 {
			t.root = id
		} else {
			top := &stack[len(stack)-1]
			if !top.haveLeft {
				t.nodes[top.id].Left = id
				top.haveLeft = true
			} else {
				t.nodes[top.id].Right = id
				stack = stack[:len(stack)-1]
			}
		}

		if flag == 0 {
			stack = append(stack, stackItem{id: id})
		}

		if len(stack) == 0 {
			return t, nil
		}
	}
}
