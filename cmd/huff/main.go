package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/icza/bitio"
	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/huffman/v2"
)

var log = logging.MustGetLogger("huff")

const progName = "huff"
const usageMessageRaw = `
Usage: huff [OPTIONS] [INPUT]

Compresses INPUT (default: standard input) with a Huffman code.

Options:
  -d
	Decompress instead of compressing.
  -o FILE
	Write to FILE instead of standard output.
  -header FORMAT
	Header format to write: "tree" (default) or "counts".
  -dump
	After compressing, write the code table to standard error.
  -debug
	Log each stage to standard error.
`

var ourFlags *flag.FlagSet

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-10s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

func main() {
	startLogging()

	ourFlags = flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})

	var (
		decompress   bool
		outputPath   string
		header       huffman.HeaderFormat
		dumpCodes    bool
		debugLogging bool
	)
	ourFlags.BoolVar(&decompress, "d", false, "")
	ourFlags.StringVar(&outputPath, "o", "-", "")
	ourFlags.Var(&header, "header", "")
	ourFlags.BoolVar(&dumpCodes, "dump", false, "")
	ourFlags.BoolVar(&debugLogging, "debug", false, "")

	argErr := ourFlags.Parse(os.Args[1:])
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}
	log.Debugf("header set to %s", header)

	inputPath := "-"
	switch ourFlags.NArg() {
	case 0:
	case 1:
		inputPath = ourFlags.Arg(0)
	default:
		usageErrorf("too many arguments at %d (\"%s\")", 1, ourFlags.Arg(1))
	}

	in, err := openInput(inputPath)
	if err != nil {
		exitError(err)
	}
	defer in.Close()

	out, err := openOutput(outputPath)
	if err != nil {
		exitError(err)
	}

	p := huffman.Processor{Header: header}
	var stats huffman.Stats
	if decompress {
		stats, err = p.Decompress(out, in)
	} else {
		stats, err = p.Compress(out, in)
	}
	if err != nil {
		out.Close()
		exitError(err)
	}
	if err := out.Close(); err != nil {
		exitError(errors.WithStack(err))
	}
	log.Infof("%s: %d bytes in, %d bytes out", inputPath, stats.BytesIn, stats.BytesOut)

	if dumpCodes && !decompress {
		if err := dumpCodeTable(in); err != nil {
			exitError(err)
		}
	}
}

type readSeekCloser interface {
	io.ReadSeeker
	io.Closer
}

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error {
	return nil
}

// openInput opens path for reading.  Standard input cannot be rewound, so it
// is read into memory first.
func openInput(path string) (readSeekCloser, error) {
	if path == "-" {
		raw, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "reading standard input")
		}
		return nopSeekCloser{bytes.NewReader(raw)}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

// dumpCodeTable rebuilds the code table from in and writes it to stderr.
func dumpCodeTable(in io.ReadSeeker) error {
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return errors.WithStack(err)
	}
	freqs, err := huffman.CountFrequencies(bitio.NewReader(in))
	if err != nil {
		return err
	}
	_, err = huffman.BuildTree(&freqs).Codes().Dump(os.Stderr)
	return err
}
