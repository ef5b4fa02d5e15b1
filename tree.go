package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// NodeID is the index of a Node within its Tree.
type NodeID int32

// NoNode marks an absent child.
const NoNode = NodeID(-1)

// A full tree over NumSymbols leaves has NumSymbols-1 internal nodes.
const maxTreeNodes = 2*NumSymbols - 1

// Node is either a leaf, holding a Symbol, or an internal node with exactly
// two children.
type Node struct {
	// Symbol is the leaf's symbol, or InvalidSymbol for internal nodes.
	Symbol Symbol

	// Weight is the leaf's frequency, or the sum of the children's
	// weights for internal nodes.  Trees read from a header carry no
	// weights.
	Weight uint64

	Left  NodeID
	Right NodeID
}

// IsLeaf returns true iff the node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoNode && n.Right == NoNode
}

// Tree is a binary prefix-code tree.  Nodes live in a single arena and refer
// to their children by NodeID; every node except the root has exactly one
// parent.
type Tree struct {
	nodes []Node
	root  NodeID
}

// Root returns the NodeID of the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node with the given NodeID.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Leaves returns the number of leaf nodes in the tree.
func (t *Tree) Leaves() int {
	// Every internal node has two children, so leaves = internal + 1.
	return (len(t.nodes) + 1) / 2
}

func (t *Tree) addLeaf(symbol Symbol, weight uint64) NodeID {
	assert.Assertf(symbol.IsValid(), "symbol %d out of range", symbol)
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{Symbol: symbol, Weight: weight, Left: NoNode, Right: NoNode})
	return id
}

func (t *Tree) addInternal(left, right NodeID) NodeID {
	id := NodeID(len(t.nodes))
	weight := saturatingAdd(t.nodes[left].Weight, t.nodes[right].Weight)
	t.nodes = append(t.nodes, Node{Symbol: InvalidSymbol, Weight: weight, Left: left, Right: right})
	return id
}

// BuildTree constructs the Huffman tree for the given byte frequencies.
//
// Every byte value gets a leaf, even those with a frequency of 0, and EOF
// gets a leaf with weight 0.  Nodes are merged lowest weight first.  Ties
// go to the node with the lower NodeID: leaves have NodeID equal to their
// Symbol and internal nodes are numbered in order of creation after the
// leaves, so leaves beat internal nodes, lower symbols beat higher ones,
// and older internal nodes beat newer ones.  The first node removed becomes
// the left child.
//
func BuildTree(freqs *FrequencyTable) *Tree {
	t := &Tree{nodes: make([]Node, 0, maxTreeNodes)}
	for symbol := Symbol(0); symbol < AlphabetSize; symbol++ {
		t.addLeaf(symbol, freqs[symbol])
	}
	t.addLeaf(EOF, 0)

	h := nodeHeap{tree: t, list: make([]NodeID, 0, NumSymbols)}
	for id := NodeID(0); id < NumSymbols; id++ {
		h.list = append(h.list, id)
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(NodeID)
		b := heap.Pop(&h).(NodeID)
		heap.Push(&h, t.addInternal(a, b))
	}

	t.root = heap.Pop(&h).(NodeID)
	return t
}

// CheckWeights verifies that every internal node weighs the sum of its
// children.
func (t *Tree) CheckWeights() error {
	for id, node := range t.nodes {
		if node.IsLeaf() {
			continue
		}
		expect := saturatingAdd(t.nodes[node.Left].Weight, t.nodes[node.Right].Weight)
		if node.Weight != expect {
			return errors.Errorf("huffman: node %d has weight %d, children sum to %d", id, node.Weight, expect)
		}
	}
	return nil
}

// Equal returns true iff both trees have the same shape and the same symbol
// at each leaf.  Weights are not compared.
func (t *Tree) Equal(other *Tree) bool {
	if len(t.nodes) != len(other.nodes) {
		return false
	}

	type pair struct {
		a NodeID
		b NodeID
	}

	stack := []pair{{t.root, other.root}}
	for len(stack) != 0 {
		last := len(stack) - 1
		p := stack[last]
		stack = stack[:last]

		a, b := t.nodes[p.a], other.nodes[p.b]
		if a.IsLeaf() != b.IsLeaf() {
			return false
		}
		if a.IsLeaf() {
			if a.Symbol != b.Symbol {
				return false
			}
			continue
		}
		stack = append(stack, pair{a.Right, b.Right}, pair{a.Left, b.Left})
	}
	return true
}

// Dump writes a programmer-readable debugging dump of the Tree, in
// pre-order, to the given writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	type stackItem struct {
		id    NodeID
		depth int
	}

	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	stack := []stackItem{{t.root, 1}}
	for len(stack) != 0 {
		last := len(stack) - 1
		item := stack[last]
		stack = stack[:last]

		node := t.nodes[item.id]
		indent := strings.Repeat("\t", item.depth)
		if node.IsLeaf() {
			fmt.Fprintf(&buf, "%sLeaf(%d) weight=%d\n", indent, node.Symbol, node.Weight)
			continue
		}
		fmt.Fprintf(&buf, "%sNode weight=%d\n", indent, node.Weight)
		stack = append(stack, stackItem{node.Right, item.depth + 1}, stackItem{node.Left, item.depth + 1})
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeHeap {{{

type nodeHeap struct {
	tree *Tree
	list []NodeID
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	aw, bw := h.tree.nodes[a].Weight, h.tree.nodes[b].Weight
	if aw != bw {
		return aw < bw
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(NodeID))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
