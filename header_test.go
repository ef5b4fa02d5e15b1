package huffman

import (
	"flag"
	"testing"

	"github.com/icza/bitio"
	"github.com/stretchr/testify/require"
)

var _ flag.Value = (*HeaderFormat)(nil)

func TestHeader_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"A",
		"AAAB",
		"the quick brown fox jumps over the lazy dog",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tree := BuildTree(freqsOf([]byte(input)))

			raw := bitsOf(t, func(w *bitio.Writer) {
				require.NoError(t, WriteHeader(w, tree))
				// A marker right after the header proves that
				// ReadHeader consumes exactly what was written.
				require.NoError(t, w.WriteBits(0x2a5, 10))
			})

			r := readerOf(raw)
			decoded, err := ReadHeader(r)
			require.NoError(t, err)
			require.True(t, tree.Equal(decoded))
			require.Equal(t, tree.Codes(), decoded.Codes())

			marker, err := r.ReadBits(10)
			require.NoError(t, err)
			require.Equal(t, uint64(0x2a5), marker)
		})
	}
}

func TestHeader_Size(t *testing.T) {
	tree := BuildTree(freqsOf(nil))
	raw := bitsOf(t, func(w *bitio.Writer) {
		require.NoError(t, WriteHeader(w, tree))
	})
	// 32 magic bits, one bit per internal node, ten bits per leaf.
	bits := 32 + (NumSymbols - 1) + NumSymbols*(1+SymbolBits)
	require.Len(t, raw, (bits+7)/8)
	require.Equal(t, []byte{0xfa, 0xce, 0x82, 0x01}, raw[:4])
}

func TestReadHeader_Errors(t *testing.T) {
	type testRow struct {
		name   string
		write  func(w *bitio.Writer)
		expect error
	}

	testData := [...]testRow{
		{
			name: "malformed-magic",
			write: func(w *bitio.Writer) {
				_ = w.WriteBits(0xdeadbeef, 32)
				_ = w.WriteBits(0, 32)
			},
			expect: ErrMalformedMagic,
		},
		{
			name: "count-header",
			write: func(w *bitio.Writer) {
				_ = w.WriteBits(uint64(MagicCounts), 32)
				_ = w.WriteBits(0, 32)
			},
			expect: ErrUnsupportedHeader,
		},
		{
			name: "short-magic",
			write: func(w *bitio.Writer) {
				_ = w.WriteBits(0xface82, 24)
			},
			expect: ErrTruncated,
		},
		{
			name: "short-tree",
			write: func(w *bitio.Writer) {
				_ = w.WriteBits(uint64(MagicTree), 32)
				_ = w.WriteBits(0, 1)
				_ = w.WriteBits(1, 1)
				_ = w.WriteBits(uint64(EOF), 9)
			},
			expect: ErrTruncated,
		},
		{
			name: "short-symbol",
			write: func(w *bitio.Writer) {
				_ = w.WriteBits(uint64(MagicTree), 32)
				_ = w.WriteBits(1, 1)
				_ = w.WriteBits(0, 3)
			},
			expect: ErrTruncated,
		},
		{
			name: "invalid-symbol",
			write: func(w *bitio.Writer) {
				_ = w.WriteBits(uint64(MagicTree), 32)
				_ = w.WriteBits(1, 1)
				_ = w.WriteBits(0x1ff, 9)
			},
			expect: ErrInvalidSymbol,
		},
		{
			name: "too-large",
			write: func(w *bitio.Writer) {
				_ = w.WriteBits(uint64(MagicTree), 32)
				for i := 0; i < 10; i++ {
					_ = w.WriteBits(0, 64)
				}
			},
			expect: ErrTreeTooLarge,
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := ReadHeader(readerOf(bitsOf(t, row.write)))
			require.ErrorIs(t, err, row.expect)
		})
	}
}

func TestReadHeader_MalformedIsNotTruncated(t *testing.T) {
	raw := bitsOf(t, func(w *bitio.Writer) {
		_ = w.WriteBits(0x12345678, 32)
	})
	_, err := ReadHeader(readerOf(raw))
	require.ErrorIs(t, err, ErrMalformedMagic)
	require.NotErrorIs(t, err, ErrTruncated)
}

func TestReadMagic_Legacy(t *testing.T) {
	raw := bitsOf(t, func(w *bitio.Writer) {
		_ = w.WriteBits(uint64(MagicNumber), 32)
	})
	format, err := ReadMagic(readerOf(raw))
	require.NoError(t, err)
	require.Equal(t, TreeHeader, format)
}

func TestHeaderFormat_Set(t *testing.T) {
	var hf HeaderFormat
	require.NoError(t, hf.Set("counts"))
	require.Equal(t, CountHeader, hf)
	require.Equal(t, "counts", hf.String())
	require.Equal(t, MagicCounts, hf.Magic())

	require.NoError(t, hf.Set("TREE"))
	require.Equal(t, TreeHeader, hf)
	require.Equal(t, MagicTree, hf.Magic())

	require.Error(t, hf.Set("bogus"))
	require.Equal(t, "HeaderFormat(7)", HeaderFormat(7).String())
}
