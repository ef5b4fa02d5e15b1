package huffman

// Symbol represents a symbol in the compressed alphabet: a byte value in
// 0..255, or EOF.  No other values are valid.
type Symbol int32

const (
	// BitsPerWord is the size of one uncompressed unit.
	BitsPerWord = 8

	// BitsPerInt is the size of the magic number.
	BitsPerInt = 32

	// AlphabetSize is the number of distinct byte values.
	AlphabetSize = 1 << BitsPerWord

	// SymbolBits is the width of a leaf symbol in the tree header.
	SymbolBits = 9

	// NumSymbols is the number of symbols in the alphabet, EOF included.
	NumSymbols = AlphabetSize + 1
)

// EOF is the end-of-stream sentinel.  Every tree has a leaf for it.
const EOF = Symbol(AlphabetSize)

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = EOF

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// IsValid returns true iff s is a byte value or EOF.
func (s Symbol) IsValid() bool {
	return s >= 0 && s <= MaxSymbol
}
