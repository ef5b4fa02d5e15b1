package huffman

import (
	"github.com/pkg/errors"
)

// FrequencyTable holds the number of occurrences of each byte value.
type FrequencyTable [AlphabetSize]uint64

// Total returns the sum of all counts.
func (ft *FrequencyTable) Total() uint64 {
	var total uint64
	for _, n := range ft {
		total = saturatingAdd(total, n)
	}
	return total
}

// Distinct returns the number of byte values with a nonzero count.
func (ft *FrequencyTable) Distinct() int {
	var n int
	for _, count := range ft {
		if count != 0 {
			n++
		}
	}
	return n
}

// CountFrequencies drains r one byte at a time and counts each byte value.
func CountFrequencies(r BitReader) (FrequencyTable, error) {
	var ft FrequencyTable
	for {
		v, err := r.ReadBits(BitsPerWord)
		if isEOF(err) {
			return ft, nil
		}
		if err != nil {
			return ft, errors.WithStack(err)
		}
		ft[v]++
	}
}
