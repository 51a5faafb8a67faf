// Package value holds JSON values in memory.  It is used to materialise one
// array item at a time: a Builder is a parser.Context that turns the events
// for a single value into a tree, which can then be inspected with Lookup.
package value

import (
	"fmt"

	"github.com/arnodel/labelstream/parser"
)

// Kind is the kind of a JSON value.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{"null", "boolean", "number", "string", "array", "object"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// A Value is one of Null, Bool, Number, String, *Array, *Object.
type Value interface {
	Kind() Kind
}

type Null struct{}

type Bool bool

type Number parser.Number

type String string

// An Array is a sequence of values.
type Array struct {
	Items []Value
}

// An Object maps keys to values, remembering the order in which keys were
// first set.
type Object struct {
	keys   []string
	values map[string]Value
}

func (Null) Kind() Kind { return NullKind }
func (Bool) Kind() Kind { return BoolKind }
func (Number) Kind() Kind { return NumberKind }
func (String) Kind() Kind { return StringKind }
func (*Array) Kind() Kind { return ArrayKind }
func (*Object) Kind() Kind { return ObjectKind }

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: map[string]Value{}}
}

// Set associates key with v.  If the key is already present its value is
// replaced but it keeps its original position.
func (o *Object) Set(key string, v Value) {
	if o.values == nil {
		o.values = map[string]Value{}
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value associated with key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys of o in order.  The slice must not be modified.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys in o.
func (o *Object) Len() int {
	return len(o.keys)
}

// Lookup follows a path of object keys from v.  It returns false if some
// step is missing or is not an object.
func Lookup(v Value, path ...string) (Value, bool) {
	for _, key := range path {
		obj, ok := v.(*Object)
		if !ok {
			return nil, false
		}
		if v, ok = obj.Get(key); !ok {
			return nil, false
		}
	}
	return v, true
}

// Equal reports whether a and b are structurally equal: same kinds, same
// scalars, same items in the same order, same keys in the same order.
// Numbers are compared by value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Null:
		return true
	case Bool:
		return x == b.(Bool)
	case String:
		return x == b.(String)
	case Number:
		y := b.(Number)
		if x.IsInt && y.IsInt {
			return x.Int == y.Int
		}
		return x.Float == y.Float
	case *Array:
		y := b.(*Array)
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i, item := range x.Items {
			if !Equal(item, y.Items[i]) {
				return false
			}
		}
		return true
	case *Object:
		y := b.(*Object)
		if x.Len() != y.Len() {
			return false
		}
		for i, key := range x.keys {
			if y.keys[i] != key || !Equal(x.values[key], y.values[key]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("invalid value: %#v", a))
	}
}
