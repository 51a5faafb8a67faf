// Package extract pulls the id and English label out of every item of a
// JSON array of entities, such as a Wikidata JSON dump, without holding more
// than one item in memory.
package extract

import (
	"fmt"
	"io"
	"log"

	"github.com/arnodel/labelstream/parser"
	"github.com/arnodel/labelstream/value"
)

// Mode decides what happens to an item that cannot be turned into a Record.
type Mode uint8

const (
	// Strict stops at the first bad item.
	Strict Mode = iota

	// Skip logs bad items and carries on with the next one.
	Skip
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode returns the Mode called name.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "strict":
		return Strict, nil
	case "skip":
		return Skip, nil
	default:
		return Strict, fmt.Errorf("invalid mode: %q (use strict or skip)", name)
	}
}

// A Sink receives the records in array order.
type Sink interface {
	Emit(Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Record) error

func (f SinkFunc) Emit(r Record) error {
	return f(r)
}

// Stats counts what happened during an extraction.
type Stats struct {
	Elements int // array items read
	Emitted  int // records sent to the sink
	Skipped  int // items skipped in Skip mode
}

// An Extractor is the parser.Context for the whole document.  It only accepts
// an array.  Each item is built with a value.Builder, projected to a Record
// and discarded.
type Extractor struct {
	sink   Sink
	mode   Mode
	logger *log.Logger
	stats  Stats
}

var _ parser.Context = (*Extractor)(nil)

// An Option configures an Extractor.
type Option func(*Extractor)

// WithMode sets the Mode (Strict by default).
func WithMode(m Mode) Option {
	return func(e *Extractor) {
		e.mode = m
	}
}

// WithLogger sets the logger used to report skipped items.
func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// New returns an Extractor sending records to sink.
func New(sink Sink, opts ...Option) *Extractor {
	e := &Extractor{sink: sink}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the document in r and sends its records to sink.
func Extract(r io.Reader, sink Sink, opts ...Option) (Stats, error) {
	e := New(sink, opts...)
	err := parser.Parse(r, e)
	return e.Stats(), err
}

// Stats returns the counts so far.
func (e *Extractor) Stats() Stats {
	return e.stats
}

func (e *Extractor) BeginArray() error {
	return nil
}

func (e *Extractor) ArrayItem(p *parser.Parser, index int) error {
	e.stats.Elements++
	v, err := value.Build(p)
	if err != nil {
		return err
	}
	rec, err := Project(v)
	if err != nil {
		err = &RecordError{Index: index, Err: err}
		if e.mode != Skip {
			return err
		}
		e.stats.Skipped++
		if e.logger != nil {
			e.logger.Printf("skipping %s", err)
		}
		return nil
	}
	if err := e.sink.Emit(rec); err != nil {
		return err
	}
	e.stats.Emitted++
	return nil
}

func (e *Extractor) EndArray(int) error {
	return nil
}

func (e *Extractor) BeginObject() error {
	return notArray(value.ObjectKind)
}

func (e *Extractor) ObjectKey(string) error {
	return notArray(value.ObjectKind)
}

func (e *Extractor) EndObject() error {
	return notArray(value.ObjectKind)
}

func (e *Extractor) String(string) error {
	return notArray(value.StringKind)
}

func (e *Extractor) Number(parser.Number) error {
	return notArray(value.NumberKind)
}

func (e *Extractor) Bool(bool) error {
	return notArray(value.BoolKind)
}

func (e *Extractor) Null() error {
	return notArray(value.NullKind)
}

func notArray(k value.Kind) error {
	return fmt.Errorf("%w: got %s", ErrRootNotArray, k)
}
