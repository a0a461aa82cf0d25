package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/nqd/flat"
	"github.com/tidwall/gjson"
)

// Document is an immutable record of scalar fields. Nested objects and arrays are flattened into
// dot notation field names.
type Document struct {
	fields map[string]Value
}

// NewDocument creates a new empty document
func NewDocument() Document {
	return Document{fields: map[string]Value{}}
}

// NewDocumentFromBytes creates a new document from the given json object bytes
func NewDocumentFromBytes(bits []byte) (Document, error) {
	if !gjson.ValidBytes(bits) {
		return Document{}, errors.New(errors.InvalidArgument, "invalid json: %s", string(bits))
	}
	return NewDocumentFromResult(gjson.ParseBytes(bits))
}

// NewDocumentFromResult creates a new document from a parsed json object
func NewDocumentFromResult(result gjson.Result) (Document, error) {
	if !result.IsObject() {
		return Document{}, errors.New(errors.InvalidArgument, "document must be a json object: %s", result.Raw)
	}
	d := NewDocument()
	if err := d.setResult("", result); err != nil {
		return Document{}, err
	}
	return d, nil
}

// NewDocumentFrom creates a new document from a map. Nested maps are flattened.
func NewDocumentFrom(values map[string]any) (Document, error) {
	flattened, err := flat.Flatten(values, nil)
	if err != nil {
		return Document{}, errors.Wrap(err, errors.InvalidArgument, "failed to flatten document")
	}
	d := NewDocument()
	for k, v := range flattened {
		switch v.(type) {
		case nil, map[string]any, []any:
			// null members and empty containers carry no scalar
			continue
		}
		value, err := ValueOf(v)
		if err != nil {
			return Document{}, errors.Wrap(err, "", "field: %s", k)
		}
		d.fields[k] = value
	}
	return d, nil
}

func (d Document) setResult(prefix string, result gjson.Result) error {
	var (
		err     error
		index   int
		isArray = result.IsArray()
	)
	result.ForEach(func(key, value gjson.Result) bool {
		field := key.String()
		if isArray {
			field = strconv.Itoa(index)
			index++
		}
		if prefix != "" {
			field = prefix + "." + field
		}
		switch value.Type {
		case gjson.Null:
		case gjson.True, gjson.False:
			d.fields[field] = Bool(value.Bool())
		case gjson.String:
			d.fields[field] = Text(value.Str)
		case gjson.Number:
			d.fields[field] = numberFromRaw(value)
		case gjson.JSON:
			err = d.setResult(field, value)
		}
		return err == nil
	})
	return err
}

// numberFromRaw keeps integer literals as integers so sums and min/max preserve their kind
func numberFromRaw(value gjson.Result) Value {
	raw := strings.TrimSpace(value.Raw)
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Int(i)
		}
	}
	return Float(value.Num)
}

// Get returns the value of the field or a FieldNotFound error
func (d Document) Get(field string) (Value, error) {
	v, ok := d.fields[field]
	if !ok {
		return Value{}, errors.New(errors.FieldNotFound, "field not found: %s", field)
	}
	return v, nil
}

// Has returns true if the document has the field
func (d Document) Has(field string) bool {
	_, ok := d.fields[field]
	return ok
}

// Fields returns the sorted field names of the document
func (d Document) Fields() []string {
	var fields []string
	for k := range d.fields {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// Len returns the number of fields in the document
func (d Document) Len() int {
	return len(d.fields)
}

// Value returns the document as a map of plain go values
func (d Document) Value() map[string]any {
	m := make(map[string]any, len(d.fields))
	for k, v := range d.fields {
		m[k] = v.Interface()
	}
	return m
}

// MarshalJSON satisfies the json Marshaler interface
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.fields)
}

// String returns the document as a json string
func (d Document) String() string {
	bits, _ := d.MarshalJSON()
	return string(bits)
}

// Documents is an ordered sequence of documents
type Documents []Document

// Values returns the value of the field for each document
func (d Documents) Values(field string) ([]Value, error) {
	values := make([]Value, 0, len(d))
	for _, doc := range d {
		v, err := doc.Get(field)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Collection is a named, ordered sequence of documents
type Collection struct {
	// Name is the name of the collection
	Name string `json:"name"`
	// Documents are the collection's documents in source order
	Documents Documents `json:"documents"`
}
