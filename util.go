package huffman

import (
	"math"
	mathbits "math/bits"
)

// BitReader is a source of bits, most significant bit first.  ReadBits
// returns io.EOF once the source is exhausted.  *bitio.Reader implements it.
type BitReader interface {
	ReadBits(n uint8) (uint64, error)
}

// BitWriter is a sink of bits, most significant bit first.  WriteBits writes
// the low n bits of r, buffering partial bytes.  *bitio.Writer implements it.
type BitWriter interface {
	WriteBits(r uint64, n uint8) error
}

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := mathbits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
