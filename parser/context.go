package parser

// A Context receives the grammar events recognised by a Parser, in document
// order.  Returning a non-nil error from any method aborts the parse and the
// error is returned unchanged by Parser.Parse / Parser.ParseValue.
//
// For an object, BeginObject is followed by one ObjectKey call per member,
// each followed by the events of the member's value (sent to the same
// Context), and finally EndObject.
//
// For an array, BeginArray is followed by one ArrayItem call per item.
// ArrayItem must consume exactly one value from p, typically by calling
// p.ParseValue with a Context of its choosing.  EndArray is then called with
// the number of items.
type Context interface {
	BeginObject() error
	ObjectKey(key string) error
	EndObject() error

	BeginArray() error
	ArrayItem(p *Parser, index int) error
	EndArray(count int) error

	String(s string) error
	Number(n Number) error
	Bool(b bool) error
	Null() error
}

// NopContext accepts all events and ignores them.  Its ArrayItem method
// consumes the item with the NopContext itself.  It can be embedded by
// contexts that are only interested in some events.
type NopContext struct{}

var _ Context = NopContext{}

func (NopContext) BeginObject() error { return nil }
func (NopContext) ObjectKey(string) error { return nil }
func (NopContext) EndObject() error { return nil }
func (NopContext) BeginArray() error { return nil }
func (NopContext) EndArray(int) error { return nil }
func (NopContext) String(string) error { return nil }
func (NopContext) Number(Number) error { return nil }
func (NopContext) Bool(bool) error { return nil }
func (NopContext) Null() error { return nil }
func (c NopContext) ArrayItem(p *Parser, _ int) error {
	return p.ParseValue(c)
}
