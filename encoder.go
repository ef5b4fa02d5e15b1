package huffman

import (
	"github.com/pkg/errors"
)

// EncodePayload reads r one byte at a time until io.EOF and writes each
// byte's code to w, followed by the code for EOF.  w is not flushed.
//
// Every byte in r must have a code in codes; a missing code means the table
// was built from different input, and is reported as ErrNoCode.
//
func EncodePayload(w BitWriter, r BitReader, codes *CodeTable) error {
	for {
		v, err := r.ReadBits(BitsPerWord)
		if isEOF(err) {
			break
		}
		if err != nil {
			return errors.WithStack(err)
		}
		if err := encodeSymbol(w, codes, Symbol(v)); err != nil {
			return err
		}
	}
	return encodeSymbol(w, codes, EOF)
}

func encodeSymbol(w BitWriter, codes *CodeTable, symbol Symbol) error {
	hc, found := codes.Lookup(symbol)
	if !found {
		return errors.Wrapf(ErrNoCode, "symbol %d", symbol)
	}
	if err := writeCode(w, hc); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
