package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest possible code.  A tree with NumSymbols leaves
// is at most NumSymbols-1 levels deep.
const MaxCodeSize = NumSymbols - 1

const codeWords = MaxCodeSize / 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size uint16

	// Bits holds the actual values of the bits.  The first bit is the most
	// significant bit of Bits[0].
	Bits [codeWords]uint64
}

// MakeCode is a convenience function that constructs a Code of up to 64
// bits.  The first bit of the code is the most significant of the low size
// bits of bits.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "size %d > 64", size)
	var hc Code
	hc.Size = uint16(size)
	if size != 0 {
		hc.Bits[0] = bits << (64 - size)
	}
	return hc
}

// Bit returns the i'th bit of this Code, counting from the first bit sent.
func (hc Code) Bit(i int) uint8 {
	assert.Assertf(i >= 0 && i < int(hc.Size), "bit index %d out of range [0, %d)", i, hc.Size)
	return uint8(hc.Bits[i/64]>>(63-uint(i%64))) & 1
}

func (hc Code) append(bit uint8) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code already has %d bits", hc.Size)
	if bit != 0 {
		i := uint(hc.Size)
		hc.Bits[i/64] |= uint64(1) << (63 - i%64)
	}
	hc.Size++
	return hc
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := 0; i < int(hc.Size); i++ {
		sb.WriteByte('0' + hc.Bit(i))
	}
	return strconv.Quote(sb.String())
}

var _ fmt.Stringer = Code{}

func writeCode(w BitWriter, hc Code) error {
	remaining := uint(hc.Size)
	for k := 0; remaining != 0; k++ {
		n := remaining
		if n > 64 {
			n = 64
		}
		if err := w.WriteBits(hc.Bits[k]>>(64-n), uint8(n)); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

// CodeTable maps each leaf Symbol of a Tree to its path from the root.
type CodeTable struct {
	codes   [NumSymbols]Code
	present [NumSymbols]bool
	count   int
	minSize uint16
	maxSize uint16
}

// Lookup returns the Code for the given Symbol.  The second return value is
// false if the tree had no leaf for the symbol.
func (ct *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	if !symbol.IsValid() || !ct.present[symbol] {
		return Code{}, false
	}
	return ct.codes[symbol], true
}

// Len returns the number of symbols with a code.
func (ct *CodeTable) Len() int {
	return ct.count
}

// MinSize is the bit length of the shortest code.
func (ct *CodeTable) MinSize() uint16 {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable) MaxSize() uint16 {
	return ct.maxSize
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		if ct.present[symbol] {
			fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, ct.codes[symbol])
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (ct *CodeTable) set(symbol Symbol, hc Code) {
	assert.Assertf(symbol.IsValid(), "symbol %d out of range", symbol)
	assert.Assertf(!ct.present[symbol], "symbol %d has two leaves", symbol)

	ct.codes[symbol] = hc
	ct.present[symbol] = true
	if ct.count == 0 {
		ct.minSize = hc.Size
		ct.maxSize = hc.Size
	} else if ct.minSize > hc.Size {
		ct.minSize = hc.Size
	} else if ct.maxSize < hc.Size {
		ct.maxSize = hc.Size
	}
	ct.count++
}

// Codes walks the tree and assigns each leaf the path from the root: 0 for
// each step to a left child, 1 for each step to a right child.  A root that
// is itself a leaf gets the empty code.
func (t *Tree) Codes() *CodeTable {
	ct := new(CodeTable)

	type stackItem struct {
		id NodeID
		hc Code
	}

	stack := make([]stackItem, 0, 2*log2uint32(uint32(len(t.nodes))))
	stack = append(stack, stackItem{id: t.root})
	for len(stack) != 0 {
		last := len(stack) - 1
		item := stack[last]
		stack = stack[:last]

		node := &t.nodes[item.id]
		if node.IsLeaf() {
			ct.set(node.Symbol, item.hc)
			continue
		}

		// Right first, so that the left subtree is visited first.
		stack = append(stack, stackItem{node.Right, item.hc.append(1)})
		stack = append(stack, stackItem{node.Left, item.hc.append(0)})
	}
	return ct
}
