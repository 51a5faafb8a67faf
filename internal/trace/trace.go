// Package trace logs grammar events as they go past, for debugging.
package trace

import (
	"fmt"
	"log"
	"strconv"

	"github.com/arnodel/labelstream/internal/format"
	"github.com/arnodel/labelstream/parser"
)

// Context is a parser.Context that logs each event on one line and then
// hands it to the wrapped Context.
type Context struct {
	inner     parser.Context
	logger    *log.Logger
	colorizer *format.Colorizer
}

var _ parser.Context = (*Context)(nil)

// New wraps inner.  The colorizer may be nil.
func New(inner parser.Context, logger *log.Logger, colorizer *format.Colorizer) *Context {
	return &Context{inner: inner, logger: logger, colorizer: colorizer}
}

func (c *Context) event(name string, payload ...string) {
	line := c.colorizer.Event(name)
	for _, p := range payload {
		line += " " + c.colorizer.Value(p)
	}
	c.logger.Print(line)
}

func (c *Context) BeginObject() error {
	c.event("begin-object")
	return c.inner.BeginObject()
}

func (c *Context) ObjectKey(key string) error {
	c.event("object-key", strconv.Quote(key))
	return c.inner.ObjectKey(key)
}

func (c *Context) EndObject() error {
	c.event("end-object")
	return c.inner.EndObject()
}

func (c *Context) BeginArray() error {
	c.event("begin-array")
	return c.inner.BeginArray()
}

func (c *Context) ArrayItem(p *parser.Parser, index int) error {
	pos := p.Pos()
	c.event("array-item", strconv.Itoa(index), fmt.Sprintf("L%d,C%d", pos.Line+1, pos.Col+1))
	return c.inner.ArrayItem(p, index)
}

func (c *Context) EndArray(count int) error {
	c.event("end-array", strconv.Itoa(count))
	return c.inner.EndArray(count)
}

func (c *Context) String(s string) error {
	c.event("string", strconv.Quote(s))
	return c.inner.String(s)
}

func (c *Context) Number(n parser.Number) error {
	c.event("number", n.Literal)
	return c.inner.Number(n)
}

func (c *Context) Bool(b bool) error {
	c.event("bool", strconv.FormatBool(b))
	return c.inner.Bool(b)
}

func (c *Context) Null() error {
	c.event("null")
	return c.inner.Null()
}
