package huffman

import (
	"io"

	"github.com/icza/bitio"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("huffman")

// Processor compresses and decompresses whole streams.  The zero value
// writes TreeHeader streams.
type Processor struct {
	// Header selects the header format written by Compress.  Only
	// TreeHeader is supported.
	Header HeaderFormat
}

// Stats describes one Compress or Decompress call.
type Stats struct {
	// BytesIn is the number of bytes consumed from the source.  For
	// Compress this counts one pass only; for Decompress it includes any
	// bytes buffered past the end of the stream.
	BytesIn int64

	// BytesOut is the number of bytes written to the destination.
	BytesOut int64

	// Leaves is the number of leaves in the code tree.
	Leaves int
}

// Compress reads src twice, once to count byte frequencies and once to
// encode, and writes the compressed stream to dst.  Between the passes src
// is rewound to the offset it had when Compress was called.  The final
// partial byte is padded with zero bits.
func (p Processor) Compress(dst io.Writer, src io.ReadSeeker) (Stats, error) {
	var stats Stats
	if p.Header != TreeHeader {
		return stats, errors.Wrapf(ErrUnsupportedHeader, "cannot write %s header", p.Header)
	}

	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return stats, errors.WithStack(err)
	}

	freqs, err := CountFrequencies(bitio.NewReader(src))
	if err != nil {
		log.Warningf("counting frequencies: %v", err)
		return stats, err
	}
	stats.BytesIn = int64(freqs.Total())
	log.Debugf("counted %d bytes, %d distinct", stats.BytesIn, freqs.Distinct())

	tree := BuildTree(&freqs)
	codes := tree.Codes()
	stats.Leaves = tree.Leaves()
	log.Debugf("built tree: %d leaves, code sizes %d .. %d", stats.Leaves, codes.MinSize(), codes.MaxSize())

	cw := &countingWriter{w: dst}
	bw := bitio.NewWriter(cw)
	if err := WriteHeader(bw, tree); err != nil {
		log.Warningf("writing header: %v", err)
		return stats, err
	}

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return stats, errors.WithStack(err)
	}

	if err := EncodePayload(bw, bitio.NewReader(src), codes); err != nil {
		log.Warningf("encoding payload: %v", err)
		return stats, err
	}

	if err := bw.Close(); err != nil {
		return stats, errors.WithStack(err)
	}
	stats.BytesOut = cw.n
	log.Debugf("compressed %d bytes to %d bytes", stats.BytesIn, stats.BytesOut)
	return stats, nil
}

// Decompress reads a compressed stream from src and writes the original
// bytes to dst.  On error nothing further is flushed to dst.
func (p Processor) Decompress(dst io.Writer, src io.Reader) (Stats, error) {
	var stats Stats

	cr := &countingReader{r: src}
	br := bitio.NewReader(cr)
	tree, err := ReadHeader(br)
	if err != nil {
		log.Warningf("reading header: %v", err)
		return stats, err
	}
	stats.Leaves = tree.Leaves()
	log.Debugf("read tree: %d leaves", stats.Leaves)

	cw := &countingWriter{w: dst}
	bw := bitio.NewWriter(cw)
	if err := DecodePayload(bw, br, tree); err != nil {
		log.Warningf("decoding payload: %v", err)
		return stats, err
	}

	if err := bw.Close(); err != nil {
		return stats, errors.WithStack(err)
	}
	stats.BytesIn = cr.n
	stats.BytesOut = cw.n
	log.Debugf("decompressed %d bytes to %d bytes", stats.BytesIn, stats.BytesOut)
	return stats, nil
}

// Compress is shorthand for Processor{}.Compress.
func Compress(dst io.Writer, src io.ReadSeeker) (Stats, error) {
	return Processor{}.Compress(dst, src)
}

// Decompress is shorthand for Processor{}.Decompress.
func Decompress(dst io.Writer, src io.Reader) (Stats, error) {
	return Processor{}.Decompress(dst, src)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
