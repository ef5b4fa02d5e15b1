package huffman

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedMagic is returned when a stream does not start with a
	// recognized magic number.
	ErrMalformedMagic = errors.New("huffman: malformed magic number")

	// ErrTruncated is returned when the input ends in the middle of the
	// tree header or before the EOF code has been decoded.
	ErrTruncated = errors.New("huffman: truncated stream")

	// ErrInvalidSymbol is returned when a tree leaf holds a value outside
	// 0..256.
	ErrInvalidSymbol = errors.New("huffman: invalid symbol")

	// ErrUnsupportedHeader is returned for the count-header format, which
	// is recognized but has no defined layout.
	ErrUnsupportedHeader = errors.New("huffman: unsupported header format")

	// ErrDegenerateTree is returned when a tree cannot decode a finite
	// payload.
	ErrDegenerateTree = errors.New("huffman: degenerate tree")

	// ErrTreeTooLarge is returned when a tree header describes more
	// leaves than the alphabet has symbols.
	ErrTreeTooLarge = errors.New("huffman: tree too large")

	// ErrNoCode is returned when the payload contains a byte that the code
	// table has no entry for.
	ErrNoCode = errors.New("huffman: no code for symbol")
)

func isEOF(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

// truncated maps end of input to ErrTruncated and stamps anything else with
// a stack trace.
func truncated(err error, format string, args ...interface{}) error {
	if isEOF(err) {
		return errors.Wrapf(ErrTruncated, format, args...)
	}
	return errors.WithStack(err)
}
