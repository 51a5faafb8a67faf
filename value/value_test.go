package value

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnodel/labelstream/parser"
)

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return v
}

func TestBuildScalars(t *testing.T) {
	assert.Equal(t, Null{}, mustParse(t, "null"))
	assert.Equal(t, Bool(true), mustParse(t, "true"))
	assert.Equal(t, String("é\n"), mustParse(t, `"é\n"`))

	n, ok := mustParse(t, "-12").(Number)
	require.True(t, ok)
	assert.True(t, n.IsInt)
	assert.Equal(t, int64(-12), n.Int)
	assert.Equal(t, "-12", n.Literal)
}

func TestBuildNested(t *testing.T) {
	v := mustParse(t, `{"id": "Q1", "labels": {"en": {"language": "en", "value": "universe"}}, "aliases": [1, [2], {}]}`)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "labels", "aliases"}, obj.Keys())

	label, ok := Lookup(v, "labels", "en", "value")
	require.True(t, ok)
	assert.Equal(t, String("universe"), label)

	aliases, ok := Lookup(v, "aliases")
	require.True(t, ok)
	arr, ok := aliases.(*Array)
	require.True(t, ok)
	require.Len(t, arr.Items, 3)
	assert.Equal(t, ArrayKind, arr.Items[1].Kind())
	assert.Equal(t, ObjectKind, arr.Items[2].Kind())
	assert.Equal(t, 0, arr.Items[2].(*Object).Len())
}

func TestLookupMissing(t *testing.T) {
	v := mustParse(t, `{"labels": {"en": "not an object"}, "list": [{"value": 1}]}`)
	for _, path := range [][]string{
		{"id"},
		{"labels", "fr"},
		{"labels", "en", "value"},
		{"list", "value"},
	} {
		_, ok := Lookup(v, path...)
		assert.False(t, ok, "path %v", path)
	}
	root, ok := Lookup(v)
	assert.True(t, ok)
	assert.Same(t, v, root)
}

func TestDuplicateKeys(t *testing.T) {
	v := mustParse(t, `{"a": 1, "b": 2, "a": "last"}`)
	obj := v.(*Object)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	a, _ := obj.Get("a")
	assert.Equal(t, String("last"), a)
}

func TestBuildItemsFromParser(t *testing.T) {
	// Build consumes exactly one value, so it can be used item by item.
	p := parser.NewParser(strings.NewReader(`[{"x": 1}, [true]]`))
	var items []Value
	ctx := &itemCollector{items: &items}
	require.NoError(t, p.Parse(ctx))
	require.Len(t, items, 2)
	assert.Equal(t, `{"x":1}`, string(Marshal(items[0])))
	assert.Equal(t, `[true]`, string(Marshal(items[1])))
}

type itemCollector struct {
	parser.NopContext
	items *[]Value
}

func (c *itemCollector) ArrayItem(p *parser.Parser, _ int) error {
	v, err := Build(p)
	if err != nil {
		return err
	}
	*c.items = append(*c.items, v)
	return nil
}

func TestEncode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`null`, `null`},
		{` [ 1 , 2.50 , -3e2 ] `, `[1,2.50,-3e2]`},
		{`{"b": false, "a": {"c": []}}`, `{"b":false,"a":{"c":[]}}`},
		{`"tab\there <&> \"q\" é"`, `"tab\there <&> \"q\" é"`},
		{`{"\u0001\/": "\b\f\r\n\\ \u001F \u2028"}`, "{\"\\u0001/\":\"\\b\\f\\r\\n\\\\ \\u001f \u2028\"}"},
	}
	for _, tt := range tests {
		var b bytes.Buffer
		require.NoError(t, Encode(&b, mustParse(t, tt.input)))
		assert.Equal(t, tt.want, b.String())
	}
	assert.Equal(t, "42", string(Marshal(Number{Int: 42, IsInt: true, Float: 42})))
	assert.Equal(t, "0.25", string(Marshal(Number{Float: 0.25})))
}

func TestRoundtrip(t *testing.T) {
	inputs := []string{
		`{"id":"Q1","labels":{"en":{"language":"en","value":"universe"}}}`,
		`{"type":"item","claims":{"P31":[{"mainsnak":{"datavalue":{"value":{"id":"Q5"}}}}]},"n":[1,-2.5,1e10,null,true,false]}`,
		`{"weird keys":{"":1,"\u0000\n":"😀"}}`,
		`["\u0001\u001f\u007f", "\ud83d\ude00 \u2028 é", "a\"\\b"]`,
		`[]`,
		`{}`,
	}
	for _, input := range inputs {
		first := mustParse(t, input)
		second := mustParse(t, string(Marshal(first)))
		assert.True(t, Equal(first, second), "roundtrip of %s", input)
		assert.Equal(t, string(Marshal(first)), string(Marshal(second)))
	}
}

func TestStringsAreNotAltered(t *testing.T) {
	// Whatever the bytes, encoding only adds quotes and escapes.
	assert.Equal(t, "\"a\xc3b\"", string(Marshal(String("a\xc3b"))))
	assert.Equal(t, "\"\xff\\\"\"", string(Marshal(String("\xff\""))))

	// The parser never builds such strings
	_, err := Parse(strings.NewReader("\"a\xc3b\""))
	var serr *parser.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "invalid UTF-8 in string", serr.Msg)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(mustParse(t, `1.0`), mustParse(t, `1`)))
	assert.False(t, Equal(mustParse(t, `{"a":1,"b":2}`), mustParse(t, `{"b":2,"a":1}`)))
	assert.False(t, Equal(mustParse(t, `[1,2]`), mustParse(t, `[1]`)))
	assert.False(t, Equal(mustParse(t, `"1"`), mustParse(t, `1`)))
	assert.False(t, Equal(mustParse(t, `{"a":1}`), mustParse(t, `{"b":1}`)))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(Null{}, nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "object", ObjectKind.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
