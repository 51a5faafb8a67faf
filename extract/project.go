package extract

import (
	"fmt"
	"strconv"

	"github.com/arnodel/labelstream/value"
)

// Paths of the fields extracted from each record.
const (
	IDPath    = "id"
	LabelPath = "labels.en.value"
)

var labelPath = []string{"labels", "en", "value"}

// A Record is what is extracted from one array item.
type Record struct {
	ID    string
	Label string
}

// Project extracts a Record from v, which must be an object with an "id"
// scalar and a string at labels.en.value.
func Project(v value.Value) (Record, error) {
	obj, ok := v.(*value.Object)
	if !ok {
		return Record{}, fmt.Errorf("%w: got %s", ErrMalformedRecord, v.Kind())
	}
	idVal, _ := obj.Get("id")
	id, ok := scalarString(idVal)
	if !ok {
		return Record{}, &MissingFieldError{Path: IDPath}
	}
	labelVal, _ := value.Lookup(obj, labelPath...)
	label, ok := labelVal.(value.String)
	if !ok {
		return Record{}, &MissingFieldError{Path: LabelPath}
	}
	return Record{ID: id, Label: string(label)}, nil
}

// scalarString turns a scalar into a string, using the JSON literal for
// anything other than a string.
func scalarString(v value.Value) (string, bool) {
	switch x := v.(type) {
	case value.String:
		return string(x), true
	case value.Number:
		if x.Literal != "" {
			return x.Literal, true
		}
		return string(value.Marshal(x)), true
	case value.Bool:
		return strconv.FormatBool(bool(x)), true
	case value.Null:
		return "null", true
	default:
		return "", false
	}
}
