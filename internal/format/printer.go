package format

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/arnodel/labelstream/extract"
)

// The LinePrinter methods do not return an error because it is assumed to be
// an exceptional case that outputting results in an error and the only
// sensible outcome is to stop the program.  Instead they panic with a
// *PrinterError.  A user can capture such errors with
//
//	func printingFunction(p *LinePrinter) (err error) {
//	    defer CatchPrinterError(&err)
//	    return doSomePrinting(p)
//	}

// CatchPrinterError can be used to capture panics caused by a LinePrinter
// because of an error encountered while attempting to send output.
func CatchPrinterError(err *error) {
	if r := recover(); r != nil {
		perr, ok := r.(*PrinterError)
		if ok {
			*err = perr
		} else {
			panic(r)
		}
	}
}

// A PrinterError contains an error that occurred while a LinePrinter was
// sending some output.
type PrinterError struct {
	Err error
}

func (e *PrinterError) Error() string {
	return fmt.Sprintf("printer error: %s", e.Err)
}

func (e *PrinterError) Unwrap() error {
	return e.Err
}

// A Flusher is implemented by buffered writers such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// LinePrinter writes lines of tab separated fields to an io.Writer.
type LinePrinter struct {
	io.Writer

	// If not nil, Flush is called after each line so that a user looking at
	// a terminal gets feedback early.
	Flusher Flusher

	// If not nil, every line written is also added to Digest.
	Digest *xxhash.Digest

	buf   []byte
	lines int
}

var _ extract.Sink = (*LinePrinter)(nil)

// PrintFields outputs the fields separated by tabs and followed by a new
// line.  The fields are written verbatim.
func (p *LinePrinter) PrintFields(fields ...string) {
	buf := p.buf[:0]
	for i, f := range fields {
		if i > 0 {
			buf = append(buf, '\t')
		}
		buf = append(buf, f...)
	}
	buf = append(buf, '\n')
	p.buf = buf
	if _, err := p.Write(buf); err != nil {
		panic(wrapError(err))
	}
	if p.Digest != nil {
		p.Digest.Write(buf)
	}
	if p.Flusher != nil {
		if err := p.Flusher.Flush(); err != nil {
			panic(wrapError(err))
		}
	}
	p.lines++
}

// Emit prints the record as an "id<TAB>label" line.
func (p *LinePrinter) Emit(r extract.Record) (err error) {
	defer CatchPrinterError(&err)
	p.PrintFields(r.ID, r.Label)
	return nil
}

// Lines returns the number of lines printed.
func (p *LinePrinter) Lines() int {
	return p.lines
}

// FormatDigest renders a digest sum the way it is reported to the user.
func FormatDigest(sum uint64) string {
	return fmt.Sprintf("xxh64:%016x", sum)
}

func wrapError(err error) *PrinterError {
	return &PrinterError{Err: err}
}
