package parser

import (
	"errors"
	"fmt"

	"github.com/arnodel/labelstream/internal/scanner"
)

// Pos is a position in the input (0-based line and column, byte offset).
type Pos = scanner.Pos

var (
	// ErrUnexpectedEnd is wrapped by the SyntaxError returned when the input
	// runs out in the middle of a value.
	ErrUnexpectedEnd = errors.New("unexpected end of input")

	// ErrDepthExceeded is wrapped by the SyntaxError returned when containers
	// are nested more deeply than Parser.MaxDepth.
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")

	// ErrRejected can be returned by a Context that refuses an event without
	// a more specific reason.
	ErrRejected = errors.New("rejected by parse context")
)

// A SyntaxError reports malformed input at a position.
type SyntaxError struct {
	Pos Pos
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at L%d,C%d: %s", e.Pos.Line+1, e.Pos.Col+1, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
