package huffman

import (
	"strings"
	"testing"

	"github.com/icza/bitio"
	"github.com/stretchr/testify/require"
)

func TestCode_String(t *testing.T) {
	type testRow struct {
		size   byte
		bits   uint64
		expect string
	}

	testData := [...]testRow{
		{size: 0, bits: 0x00, expect: `""`},
		{size: 1, bits: 0x00, expect: `"0"`},
		{size: 1, bits: 0x01, expect: `"1"`},
		{size: 4, bits: 0x0e, expect: `"1110"`},
		{size: 5, bits: 0x0e, expect: `"01110"`},
	}
	for _, row := range testData {
		hc := MakeCode(row.size, row.bits)
		t.Run(row.expect, func(t *testing.T) {
			actual := hc.String()
			if row.expect != actual {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestCode_LongCodes(t *testing.T) {
	var hc Code
	for i := 0; i < 150; i++ {
		hc = hc.append(uint8(i%3) & 1)
	}
	require.Equal(t, uint16(150), hc.Size)
	for i := 0; i < 150; i++ {
		require.Equal(t, uint8(i%3)&1, hc.Bit(i), "bit %d", i)
	}

	raw := bitsOf(t, func(w *bitio.Writer) {
		require.NoError(t, writeCode(w, hc))
	})
	require.Len(t, raw, 19)

	r := readerOf(raw)
	for i := 0; i < 150; i++ {
		bit, err := r.ReadBits(1)
		require.NoError(t, err)
		require.Equal(t, uint64(hc.Bit(i)), bit, "bit %d", i)
	}
}

func TestCode_MaxSize(t *testing.T) {
	var hc Code
	for i := 0; i < MaxCodeSize; i++ {
		hc = hc.append(1)
	}
	require.Equal(t, strings.Repeat("1", MaxCodeSize), strings.Trim(hc.String(), `"`))
	require.Panics(t, func() { hc.append(0) })
}

func TestCodeTable_Dump(t *testing.T) {
	tree, err := ReadHeader(readerOf(twoLeafHeader(t)))
	require.NoError(t, err)

	ct := tree.Codes()
	require.Equal(t, 2, ct.Len())

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 1\n",
		"\tLookup(65) = \"1\"\n",
		"\tLookup(256) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = ct.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	_, found := ct.Lookup('B')
	require.False(t, found)
	_, found = ct.Lookup(InvalidSymbol)
	require.False(t, found)
}

func TestCodes_RootLeaf(t *testing.T) {
	tree := &Tree{root: 0}
	tree.addLeaf(EOF, 0)

	ct := tree.Codes()
	hc, found := ct.Lookup(EOF)
	require.True(t, found)
	require.Equal(t, uint16(0), hc.Size)
	require.Equal(t, 1, ct.Len())
}

func TestCodes_PrefixFree(t *testing.T) {
	tree := BuildTree(freqsOf([]byte("it was the best of times, it was the worst of times")))
	ct := tree.Codes()
	require.Equal(t, NumSymbols, ct.Len())

	isPrefix := func(a, b Code) bool {
		if a.Size > b.Size {
			return false
		}
		for i := 0; i < int(a.Size); i++ {
			if a.Bit(i) != b.Bit(i) {
				return false
			}
		}
		return true
	}

	for a := Symbol(0); a < NumSymbols; a++ {
		ca, found := ct.Lookup(a)
		require.True(t, found, "symbol %d", a)
		for b := Symbol(0); b < NumSymbols; b++ {
			if a == b {
				continue
			}
			cb, _ := ct.Lookup(b)
			require.False(t, isPrefix(ca, cb), "code %s for %d is a prefix of code %s for %d", ca, a, cb, b)
		}
	}
}
