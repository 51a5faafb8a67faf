// Package scanner provides the forward-only byte cursor the parser runs on.
package scanner

import (
	"io"
	"slices"

	"github.com/arnodel/labelstream/internal/debug"
)

// Pos locates a byte in the input.  Line and Col are 0-based, Offset counts
// bytes from the start of the input.
type Pos struct {
	Line   int
	Col    int
	Offset int64
}

// A Scanner reads bytes from an io.Reader through a fixed size buffer.  It
// never looks back more than one byte, so memory use does not depend on the
// size of the input (except for tokens being recorded, see StartToken).
type Scanner struct {
	reader io.Reader
	buf    []byte

	// The first unfilled position in buf
	// 0 <= fillIndex <= len(buf)
	fillIndex int

	// Current position in buf
	// 0 <= currentIndex <= fillIndex
	currentIndex int

	// Position of the current byte in the whole input, and of the byte before
	// it (so that Back() can restore it).
	currentPos, prevPos Pos

	// Position in buf of the currently recorded token.
	// -1 means not recording a token
	// 0 means there may be token parts no longer in the buffer
	// tokenStartIndex <= currentIndex
	tokenStartIndex int

	// Parts of a token that no longer fit in the read buffer.
	tokenParts [][]byte

	err error

	// Tracks how many EOFs have been read.  This is required to make
	// Back() work after an EOF has been read.
	eofCount int

	// True if the last byte returned by Read, Peek or SkipSpaceAndPeek was
	// EOF because the input is exhausted (see AtEOF).
	atEOF bool
}

// NewScanner returns a scanner reading from reader with the default buffer
// size.
func NewScanner(reader io.Reader) *Scanner {
	return NewScannerSize(reader, defaultBufSize)
}

// NewScannerSize returns a scanner whose read buffer holds size bytes.
func NewScannerSize(reader io.Reader, size int) *Scanner {
	if size < minBufSize {
		size = minBufSize
	}
	return &Scanner{
		reader:          reader,
		buf:             make([]byte, size),
		tokenStartIndex: -1,
		prevPos:         Pos{Line: -1},
	}
}

func (s *Scanner) fillBuf() {
	if s.fillIndex == len(s.buf) {
		var baseIndex int
		// If we are recording a token then we try to shift the buffer so the token
		// remains wholly in the buffer.
		if s.tokenStartIndex > 0 {
			baseIndex = s.tokenStartIndex
			s.tokenStartIndex = 0
		} else if s.currentIndex >= lookBackSize {
			baseIndex = s.currentIndex - lookBackSize
			if s.tokenStartIndex >= 0 {
				// At this point s.tokenStartIndex is 0
				s.tokenParts = append(s.tokenParts, slices.Clone(s.buf[:baseIndex]))
				if debug.On {
					debug.Printf("token spans %d buffers at offset %d", len(s.tokenParts)+1, s.currentPos.Offset)
				}
			}
		}
		if baseIndex > 0 {
			copy(s.buf, s.buf[baseIndex:s.fillIndex])
			s.fillIndex -= baseIndex
			s.currentIndex -= baseIndex
		}
	}
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.reader.Read(s.buf[s.fillIndex:])
		s.fillIndex += n
		if err != nil {
			s.err = err
			return
		}
		if n > 0 {
			return
		}
	}
	s.err = io.ErrNoProgress
}

// Read returns the next byte and advances past it.  At the end of the input
// it returns EOF and a nil error; any other read error is returned as is.
func (s *Scanner) Read() (byte, error) {
	if s.currentIndex >= s.fillIndex && s.err == nil {
		s.fillBuf()
	}
	if s.currentIndex < s.fillIndex {
		b := s.buf[s.currentIndex]
		s.prevPos = s.currentPos
		s.advancePos(b)
		s.currentIndex++
		s.atEOF = false
		return b, nil
	}
	if s.err == io.EOF {
		s.prevPos = s.currentPos
		s.eofCount++
		s.atEOF = true
		return EOF, nil
	}
	s.atEOF = false
	return 0, s.err
}

// AtEOF reports whether the EOF byte last returned by Read, Peek or
// SkipSpaceAndPeek marks the end of the input, as opposed to a 0xFF byte
// found in the input.
func (s *Scanner) AtEOF() bool {
	return s.atEOF
}

func (s *Scanner) advancePos(b byte) {
	s.currentPos.Offset++
	switch {
	case b == '\n':
		s.currentPos.Line++
		s.currentPos.Col = 0
	case b < 0x80 || b >= 0xC0:
		// Continuation bytes of a utf8-encoded codepoint do not move the column.
		s.currentPos.Col++
	}
}

// StartToken starts recording the bytes read, until EndToken is called.
func (s *Scanner) StartToken() Pos {
	if s.tokenStartIndex >= 0 {
		panic("already in record mode")
	}
	s.tokenStartIndex = s.currentIndex
	return s.currentPos
}

// CurrentPos returns the position of the next byte to be read.
func (s *Scanner) CurrentPos() Pos {
	return s.currentPos
}

// EndToken stops recording and returns the bytes read since StartToken.
func (s *Scanner) EndToken() []byte {
	if s.tokenStartIndex < 0 {
		panic("not in record mode")
	}
	if s.tokenParts == nil {
		tokBytes := slices.Clone(s.buf[s.tokenStartIndex:s.currentIndex])
		s.tokenStartIndex = -1
		return tokBytes
	}
	tokLen := s.currentIndex - s.tokenStartIndex
	for _, p := range s.tokenParts {
		tokLen += len(p)
	}
	tokBytes := make([]byte, 0, tokLen)
	for _, c := range s.tokenParts {
		tokBytes = append(tokBytes, c...)
	}
	tokBytes = append(tokBytes, s.buf[s.tokenStartIndex:s.currentIndex]...)
	s.tokenStartIndex = -1
	s.tokenParts = nil
	return tokBytes
}

// Back undoes the last Read.  It can only be called once between two reads.
func (s *Scanner) Back() {
	if s.prevPos.Line < 0 {
		panic("cannot go back twice")
	}
	if s.eofCount > 0 {
		s.eofCount--
		s.prevPos.Line = -1
		return
	}
	if s.currentIndex <= 0 || s.currentIndex <= s.tokenStartIndex {
		panic("cannot go back from start")
	}
	s.currentIndex--
	s.currentPos = s.prevPos
	s.prevPos.Line = -1
}

// Peek returns the next byte without advancing.
func (s *Scanner) Peek() (byte, error) {
	if s.currentIndex >= s.fillIndex && s.err == nil {
		s.fillBuf()
	}
	if s.currentIndex < s.fillIndex {
		s.atEOF = false
		return s.buf[s.currentIndex], nil
	}
	return s.errOrEOF()
}

func (s *Scanner) errOrEOF() (byte, error) {
	s.atEOF = s.err == io.EOF
	if s.atEOF {
		return EOF, nil
	}
	return 0, s.err
}

// SkipSpaceAndPeek skips JSON whitespace and returns the next byte without
// advancing past it.
func (s *Scanner) SkipSpaceAndPeek() (byte, error) {
	for {
		for i, b := range s.buf[s.currentIndex:s.fillIndex] {
			if !IsSpace(b) {
				s.currentIndex += i
				s.atEOF = false
				return b, nil
			}
			s.advancePos(b)
		}
		s.currentIndex = s.fillIndex
		if s.err != nil {
			return s.errOrEOF()
		}
		s.fillBuf()
		if s.currentIndex >= s.fillIndex {
			return s.errOrEOF()
		}
	}
}

const (
	lookBackSize             = 1
	maxConsecutiveEmptyReads = 100
	defaultBufSize           = 64 * 1024
	minBufSize               = 16
)

// EOF is returned by Read and Peek at the end of the input.  0xFF is a byte
// that should not appear in a UTF-8 encoded stream of bytes, but it can still
// be read from bad input: use AtEOF to tell them apart.
const EOF byte = 0xFF
