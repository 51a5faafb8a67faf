// Package input opens the document to parse, decompressing it on the fly if
// needed.  Entity dumps are usually distributed compressed, and they are too
// big to decompress to disk first.
package input

import (
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is a compression format for the input.
type Compression uint8

const (
	Auto Compression = iota // guess from the first bytes
	None
	Gzip
	Zstd
	Bzip2
	LZ4
	S2 // also reads Snappy framed streams
)

var compressionNames = [...]string{"auto", "none", "gzip", "zstd", "bzip2", "lz4", "s2"}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("Compression(%d)", c)
}

// ParseCompression returns the Compression called name.
func ParseCompression(name string) (Compression, error) {
	for i, n := range compressionNames {
		if n == name {
			return Compression(i), nil
		}
	}
	return Auto, fmt.Errorf("invalid compression: %q (use auto, none, gzip, zstd, bzip2, lz4 or s2)", name)
}

type magic struct {
	prefix      []byte
	compression Compression
}

var magics = []magic{
	{[]byte{0x1f, 0x8b}, Gzip},
	{[]byte{0x28, 0xb5, 0x2f, 0xfd}, Zstd},
	{[]byte("BZh"), Bzip2},
	{[]byte{0x04, 0x22, 0x4d, 0x18}, LZ4},
	{[]byte{0xff, 0x06, 0x00, 0x00}, S2},
}

// sniffSize is enough bytes to recognise any of the magics.
const sniffSize = 4

// Detect guesses the compression of a stream from its first bytes.  It
// returns None if nothing matches.
func Detect(start []byte) Compression {
	for _, m := range magics {
		if bytes.HasPrefix(start, m.prefix) {
			return m.compression
		}
	}
	return None
}

// Decompress returns a reader for the decompressed contents of r.  If c is
// Auto, the compression is detected from the first bytes of r.  Closing the
// returned reader does not close r.
func Decompress(r io.Reader, c Compression) (io.ReadCloser, error) {
	if c == Auto {
		start := make([]byte, sniffSize)
		n, err := io.ReadFull(r, start)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("unable to read input: %w", err)
		}
		start = start[:n]
		c = Detect(start)
		r = io.MultiReader(bytes.NewReader(start), r)
	}
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case Zstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case Bzip2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case S2:
		return io.NopCloser(s2.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}

// Open opens the file at path (or stdin if path is "" or "-") and
// decompresses it according to c.  Closing the returned reader closes the
// file.
func Open(path string, stdin io.Reader, c Compression) (io.ReadCloser, error) {
	var raw io.Reader = stdin
	var file *os.File
	if path != "" && path != "-" {
		var err error
		file, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		raw = file
	}
	rc, err := Decompress(raw, c)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, err
	}
	if file == nil {
		return rc, nil
	}
	return &fileReader{ReadCloser: rc, file: file}, nil
}

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (r *fileReader) Close() error {
	err := r.ReadCloser.Close()
	if ferr := r.file.Close(); err == nil {
		err = ferr
	}
	return err
}
