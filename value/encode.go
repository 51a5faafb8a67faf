package value

import (
	"fmt"
	"io"
	"strconv"
)

// Encode writes v to w as compact JSON.
func Encode(w io.Writer, v Value) error {
	_, err := w.Write(Append(nil, v))
	return err
}

// Marshal returns v encoded as compact JSON.
func Marshal(v Value) []byte {
	return Append(nil, v)
}

// Append appends the compact JSON encoding of v to buf.
func Append(buf []byte, v Value) []byte {
	switch x := v.(type) {
	case Null:
		return append(buf, "null"...)
	case Bool:
		return strconv.AppendBool(buf, bool(x))
	case Number:
		switch {
		case x.Literal != "":
			return append(buf, x.Literal...)
		case x.IsInt:
			return strconv.AppendInt(buf, x.Int, 10)
		default:
			return strconv.AppendFloat(buf, x.Float, 'g', -1, 64)
		}
	case String:
		return appendString(buf, string(x))
	case *Array:
		buf = append(buf, '[')
		for i, item := range x.Items {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = Append(buf, item)
		}
		return append(buf, ']')
	case *Object:
		buf = append(buf, '{')
		for i, key := range x.keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendString(buf, key)
			buf = append(buf, ':')
			buf = Append(buf, x.values[key])
		}
		return append(buf, '}')
	default:
		panic(fmt.Sprintf("invalid value: %#v", v))
	}
}

// appendString appends s as a JSON string.  Only '"', '\\' and control
// characters are escaped, all other bytes are copied as they are.
func appendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	var i int
	for n := 0; n < len(s); n++ {
		if c := s[n]; c < 0x20 || c == '"' || c == '\\' {
			buf = append(buf, s[i:n]...)
			buf = appendEscapedASCII(buf, c)
			i = n + 1
		}
	}
	buf = append(buf, s[i:]...)
	return append(buf, '"')
}

func appendEscapedASCII(buf []byte, c byte) []byte {
	switch c {
	case '"', '\\':
		return append(buf, '\\', c)
	case '\b':
		return append(buf, `\b`...)
	case '\f':
		return append(buf, `\f`...)
	case '\n':
		return append(buf, `\n`...)
	case '\r':
		return append(buf, `\r`...)
	case '\t':
		return append(buf, `\t`...)
	default:
		const hex = "0123456789abcdef"
		return append(buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
	}
}
