// Package parser implements a push-based JSON parser.  It reads its input
// once, front to back, through a fixed size buffer and reports what it
// recognises to a Context as it goes, so no part of the document is kept in
// memory unless the Context chooses to keep it.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arnodel/labelstream/internal/scanner"
)

// DefaultMaxDepth is the container nesting limit of a new Parser.
const DefaultMaxDepth = 512

// A Number is a JSON number.  Literal is the number as it appears in the
// input.  Float is always set; Int is also set (and IsInt true) when the
// literal has no fraction or exponent and fits in an int64.
type Number struct {
	Literal string
	Float   float64
	Int     int64
	IsInt   bool
}

func (n Number) String() string {
	return n.Literal
}

// A Parser reads JSON values from an input and drives a Context.
type Parser struct {
	// MaxDepth bounds the nesting of arrays and objects.  0 means no limit.
	MaxDepth int

	scanr *scanner.Scanner
	depth int

	// Scratch space for decoding strings
	buf []byte
}

// NewParser sets up a Parser reading from in.
func NewParser(in io.Reader) *Parser {
	return NewParserSize(in, 0)
}

// NewParserSize sets up a Parser reading from in through a buffer of the
// given size (the default size if size <= 0).
func NewParserSize(in io.Reader, size int) *Parser {
	var scanr *scanner.Scanner
	if size > 0 {
		scanr = scanner.NewScannerSize(in, size)
	} else {
		scanr = scanner.NewScanner(in)
	}
	return &Parser{
		MaxDepth: DefaultMaxDepth,
		scanr:    scanr,
	}
}

// Parse reads the JSON document in the input and sends its events to ctx.
func Parse(in io.Reader, ctx Context) error {
	return NewParser(in).Parse(ctx)
}

// Parse reads exactly one JSON value, sending its events to ctx, and checks
// that nothing but whitespace follows it.
func (p *Parser) Parse(ctx Context) error {
	if err := p.ParseValue(ctx); err != nil {
		return err
	}
	if _, err := p.scanr.SkipSpaceAndPeek(); err != nil {
		return err
	}
	if !p.scanr.AtEOF() {
		return p.unexpectedByte("unexpected data after top-level value:")
	}
	return nil
}

// ParseValue reads one JSON value, sending its events to ctx.  It is meant to
// be called from Context.ArrayItem to consume an array item.
func (p *Parser) ParseValue(ctx Context) error {
	b, err := p.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if p.scanr.AtEOF() {
		return p.unexpectedEnd()
	}
	switch b {
	case '{':
		return p.parseObject(ctx)
	case '[':
		return p.parseArray(ctx)
	case '"':
		s, err := p.parseString()
		if err != nil {
			return err
		}
		return ctx.String(s)
	case 't':
		if err := p.checkBytes(trueBytes); err != nil {
			return err
		}
		return ctx.Bool(true)
	case 'f':
		if err := p.checkBytes(falseBytes); err != nil {
			return err
		}
		return ctx.Bool(false)
	case 'n':
		if err := p.checkBytes(nullBytes); err != nil {
			return err
		}
		return ctx.Null()
	default:
		if b == '-' || scanner.IsDigit(b) {
			n, err := p.parseNumber()
			if err != nil {
				return err
			}
			return ctx.Number(n)
		}
		return p.unexpectedByte("expected value, got")
	}
}

// Pos returns the position of the next byte to be read.
func (p *Parser) Pos() Pos {
	return p.scanr.CurrentPos()
}

// Depth returns the number of containers currently open.
func (p *Parser) Depth() int {
	return p.depth
}

func (p *Parser) enter() error {
	if p.MaxDepth > 0 && p.depth >= p.MaxDepth {
		return &SyntaxError{
			Pos: p.scanr.CurrentPos(),
			Msg: fmt.Sprintf("nesting depth exceeds %d", p.MaxDepth),
			Err: ErrDepthExceeded,
		}
	}
	p.depth++
	return nil
}

func (p *Parser) parseArray(ctx Context) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer func() { p.depth-- }()
	if err := p.expectByte('['); err != nil {
		return err
	}
	if err := ctx.BeginArray(); err != nil {
		return err
	}
	b, err := p.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if b == ']' {
		p.scanr.Read()
		return ctx.EndArray(0)
	}
	for i := 0; ; i++ {
		if err := ctx.ArrayItem(p, i); err != nil {
			return err
		}
		b, err = p.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		switch b {
		case ']':
			p.scanr.Read()
			return ctx.EndArray(i + 1)
		case ',':
			p.scanr.Read()
			// So that Pos() is the start of the item in ArrayItem
			if _, err = p.scanr.SkipSpaceAndPeek(); err != nil {
				return err
			}
		default:
			return p.unexpectedByte("expected ']' or ',', got")
		}
	}
}

func (p *Parser) parseObject(ctx Context) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer func() { p.depth-- }()
	if err := p.expectByte('{'); err != nil {
		return err
	}
	if err := ctx.BeginObject(); err != nil {
		return err
	}
	b, err := p.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if b == '}' {
		p.scanr.Read()
		return ctx.EndObject()
	}
	for {
		if b != '"' {
			return p.unexpectedByte("expected object key, got")
		}
		key, err := p.parseString()
		if err != nil {
			return err
		}
		b, err = p.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		if b != ':' {
			return p.unexpectedByte("expected ':', got")
		}
		p.scanr.Read()
		if err := ctx.ObjectKey(key); err != nil {
			return err
		}
		if err := p.ParseValue(ctx); err != nil {
			return err
		}
		b, err = p.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		switch b {
		case '}':
			p.scanr.Read()
			return ctx.EndObject()
		case ',':
			p.scanr.Read()
			b, err = p.scanr.SkipSpaceAndPeek()
			if err != nil {
				return err
			}
		default:
			return p.unexpectedByte("expected '}' or ',', got")
		}
	}
}

// parseString decodes a JSON string into p.buf and returns it.  The decoded
// string must be valid UTF-8.
func (p *Parser) parseString() (string, error) {
	pos := p.scanr.CurrentPos()
	if err := p.expectByte('"'); err != nil {
		return "", err
	}
	buf := p.buf[:0]

	// A high surrogate waiting for its low half
	var pending rune
	flush := func() {
		if pending != 0 {
			buf = utf8.AppendRune(buf, unicode.ReplacementChar)
			pending = 0
		}
	}
	for {
		b, err := p.scanr.Read()
		if err != nil {
			return "", err
		}
		if b != '\\' {
			flush()
		}
		switch {
		case b == '"':
			p.buf = buf
			if !utf8.Valid(buf) {
				return "", &SyntaxError{Pos: pos, Msg: "invalid UTF-8 in string"}
			}
			return string(buf), nil
		case b == '\\':
			x, err := p.scanr.Read()
			if err != nil {
				return "", err
			}
			if x != 'u' {
				flush()
			}
			switch x {
			case '"', '\\', '/':
				buf = append(buf, x)
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'u':
				r, err := p.readHex4()
				if err != nil {
					return "", err
				}
				switch {
				case r >= 0xD800 && r < 0xDC00:
					flush()
					pending = r
				case r >= 0xDC00 && r < 0xE000:
					if pending != 0 {
						buf = utf8.AppendRune(buf, utf16.DecodeRune(pending, r))
						pending = 0
					} else {
						buf = utf8.AppendRune(buf, unicode.ReplacementChar)
					}
				default:
					flush()
					buf = utf8.AppendRune(buf, r)
				}
			default:
				p.scanr.Back()
				return "", p.unexpectedByte("invalid escape character")
			}
		case b == scanner.EOF && p.scanr.AtEOF():
			return "", p.unexpectedEnd()
		case scanner.IsCtrl(b):
			p.scanr.Back()
			return "", p.unexpectedByte("invalid character in string:")
		default:
			buf = append(buf, b)
		}
	}
}

func (p *Parser) readHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		b, err := p.scanr.Read()
		if err != nil {
			return 0, err
		}
		if !scanner.IsHexDigit(b) {
			p.scanr.Back()
			return 0, p.unexpectedByte("expected hex digit, got")
		}
		r = r<<4 | scanner.HexValue(b)
	}
	return r, nil
}

func (p *Parser) parseNumber() (Number, error) {
	pos := p.scanr.StartToken()
	fail := func(err error) (Number, error) {
		p.scanr.EndToken()
		return Number{}, err
	}
	var n int
	b, err := p.scanr.Read()

	// Sign part
	if err == nil && b == '-' {
		b, err = p.scanr.Read()
	}
	if err != nil {
		return fail(err)
	}

	// Integer part
	switch {
	case b == '0':
		b, err = p.scanr.Read()
	case b >= '1' && b <= '9':
		b, _, err = p.readDigits()
	default:
		p.scanr.Back()
		return fail(p.unexpectedByte("expected digit, got"))
	}
	if err != nil {
		return fail(err)
	}
	isInt := true

	// Fraction part
	if b == '.' {
		isInt = false
		b, n, err = p.readDigits()
		if err != nil {
			return fail(err)
		}
		if n == 0 {
			p.scanr.Back()
			return fail(p.unexpectedByte("expected digit, got"))
		}
	}

	// Exponent part
	if b == 'e' || b == 'E' {
		isInt = false
		b, err = p.scanr.Peek()
		if err != nil {
			return fail(err)
		}
		if b == '-' || b == '+' {
			p.scanr.Read()
		}
		b, n, err = p.readDigits()
		if err != nil {
			return fail(err)
		}
		if n == 0 {
			p.scanr.Back()
			return fail(p.unexpectedByte("expected digit, got"))
		}
	}
	p.scanr.Back()
	num := Number{Literal: string(p.scanr.EndToken())}
	if isInt {
		if i, err := strconv.ParseInt(num.Literal, 10, 64); err == nil {
			num.Int = i
			num.IsInt = true
			num.Float = float64(i)
			return num, nil
		}
	}
	num.Float, err = strconv.ParseFloat(num.Literal, 64)
	if err != nil {
		return Number{}, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("number out of range: %s", num.Literal), Err: err}
	}
	return num, nil
}

func (p *Parser) readDigits() (byte, int, error) {
	var n int
	for {
		b, err := p.scanr.Read()
		if err != nil {
			return 0, n, err
		}
		if !scanner.IsDigit(b) {
			return b, n, nil
		}
		n++
	}
}

func (p *Parser) expectByte(xb byte) error {
	b, err := p.scanr.Read()
	if err != nil {
		return err
	}
	if b != xb {
		p.scanr.Back()
		return p.unexpectedByte(fmt.Sprintf("expected %q, got", xb))
	}
	return nil
}

func (p *Parser) checkBytes(expected []byte) error {
	for _, xb := range expected {
		if err := p.expectByte(xb); err != nil {
			return err
		}
	}
	return nil
}

// unexpectedByte reports the next byte as a syntax error.
func (p *Parser) unexpectedByte(msg string) error {
	pos := p.scanr.CurrentPos()
	b, err := p.scanr.Peek()
	if err != nil {
		return err
	}
	if p.scanr.AtEOF() {
		return p.unexpectedEnd()
	}
	if b >= utf8.RuneSelf {
		return &SyntaxError{Pos: pos, Msg: fmt.Sprintf("%s byte 0x%02x", msg, b)}
	}
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf("%s %q", msg, b)}
}

func (p *Parser) unexpectedEnd() error {
	return &SyntaxError{
		Pos: p.scanr.CurrentPos(),
		Msg: "unexpected end of input",
		Err: ErrUnexpectedEnd,
	}
}

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)
