package value

import (
	"io"

	"github.com/arnodel/labelstream/parser"
)

type frame struct {
	container Value // *Array or *Object
	key       string
}

// A Builder is a parser.Context that builds the Value it is sent.  It knows
// nothing about what the value should look like.
type Builder struct {
	stack []frame
	root  Value
}

var _ parser.Context = (*Builder)(nil)

// Build reads one value from p and returns it.
func Build(p *parser.Parser) (Value, error) {
	b := &Builder{}
	if err := p.ParseValue(b); err != nil {
		return nil, err
	}
	return b.Value(), nil
}

// Parse reads a whole JSON document from r.
func Parse(r io.Reader) (Value, error) {
	b := &Builder{}
	if err := parser.NewParser(r).Parse(b); err != nil {
		return nil, err
	}
	return b.Value(), nil
}

// Value returns the value built so far (nil if nothing was received).
func (b *Builder) Value() Value {
	return b.root
}

func (b *Builder) put(v Value) error {
	if len(b.stack) == 0 {
		b.root = v
		return nil
	}
	top := &b.stack[len(b.stack)-1]
	switch c := top.container.(type) {
	case *Array:
		c.Items = append(c.Items, v)
	case *Object:
		c.Set(top.key, v)
	}
	return nil
}

func (b *Builder) push(c Value) error {
	if err := b.put(c); err != nil {
		return err
	}
	b.stack = append(b.stack, frame{container: c})
	return nil
}

func (b *Builder) pop() error {
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *Builder) BeginObject() error {
	return b.push(NewObject())
}

func (b *Builder) ObjectKey(key string) error {
	b.stack[len(b.stack)-1].key = key
	return nil
}

func (b *Builder) EndObject() error {
	return b.pop()
}

func (b *Builder) BeginArray() error {
	return b.push(&Array{})
}

func (b *Builder) ArrayItem(p *parser.Parser, _ int) error {
	return p.ParseValue(b)
}

func (b *Builder) EndArray(int) error {
	return b.pop()
}

func (b *Builder) String(s string) error {
	return b.put(String(s))
}

func (b *Builder) Number(n parser.Number) error {
	return b.put(Number(n))
}

func (b *Builder) Bool(v bool) error {
	return b.put(Bool(v))
}

func (b *Builder) Null() error {
	return b.put(Null{})
}
