package document

import (
	"fmt"
	"strings"

	"go.alis.build/utils"
)

const (
	// AttributePrefix marks attribute keys, e.g. "@xmlns:oml"
	AttributePrefix = "@"
	// TextKey holds character data of an element that also has attributes or children
	TextKey = "#text"
)

// Element is an ordered mapping of qualified names to values.
// A value is one of: string (text only element), nil (empty element), *Element (nested
// element) or []interface{} (repeated element, each item being one of the former).
type Element struct {
	fields *utils.OrderedMap[string, interface{}]
}

// NewElement creates an empty element
func NewElement() *Element {
	return &Element{fields: utils.NewOrderedMap[string, interface{}]()}
}

// Put sets a field value, keeping the position of an existing key
func (e *Element) Put(key string, value interface{}) *Element {
	e.fields.Set(key, value)
	return e
}

// Append adds value to a repeated field, turning a single value into a list
func (e *Element) Append(key string, value interface{}) *Element {
	existing, ok := e.fields.Get(key)
	if !ok {
		e.fields.Set(key, value)
		return e
	}
	if list, isList := existing.([]interface{}); isList {
		e.fields.Set(key, append(list, value))
		return e
	}
	e.fields.Set(key, []interface{}{existing, value})
	return e
}

// Lookup returns a raw field value
func (e *Element) Lookup(key string) (interface{}, bool) {
	if e == nil {
		return nil, false
	}
	return e.fields.Get(key)
}

// Has returns true if field is present
func (e *Element) Has(key string) bool {
	_, ok := e.Lookup(key)
	return ok
}

// Text returns a text field; a present empty element yields an empty string
func (e *Element) Text(key string) (string, bool, error) {
	value, ok := e.Lookup(key)
	if !ok {
		return "", false, nil
	}
	text, err := AsText(value)
	if err != nil {
		return "", true, fmt.Errorf("%v: %w", key, err)
	}
	return text, true, nil
}

// Element returns a nested element field
func (e *Element) Element(key string) (*Element, bool) {
	value, ok := e.Lookup(key)
	if !ok {
		return nil, false
	}
	ret, ok := value.(*Element)
	return ret, ok
}

// Items returns a repeated field as a list, whatever its multiplicity in the source document
func (e *Element) Items(key string) []interface{} {
	value, ok := e.Lookup(key)
	if !ok {
		return nil
	}
	return AsList(value)
}

// Keys returns field names in order
func (e *Element) Keys() []string {
	return e.fields.Keys()
}

// Len returns number of fields
func (e *Element) Len() int {
	return e.fields.Len()
}

// Pairs iterates fields in order
func (e *Element) Pairs(callback func(key string, value interface{}) error) error {
	for _, key := range e.fields.Keys() {
		value, _ := e.fields.Get(key)
		if err := callback(key, value); err != nil {
			return err
		}
	}
	return nil
}

// AsList normalises a field value into a list: nil yields an empty list, a list is returned
// as is, and any single value is wrapped into a list of one.
func AsList(value interface{}) []interface{} {
	switch actual := value.(type) {
	case nil:
		return nil
	case []interface{}:
		return actual
	case []*Element:
		ret := make([]interface{}, 0, len(actual))
		for _, item := range actual {
			ret = append(ret, item)
		}
		return ret
	case []string:
		ret := make([]interface{}, 0, len(actual))
		for _, item := range actual {
			ret = append(ret, item)
		}
		return ret
	default:
		return []interface{}{value}
	}
}

// AsText converts a field value into text; an element carrying only character data and
// attributes yields its #text field
func AsText(value interface{}) (string, error) {
	switch actual := value.(type) {
	case nil:
		return "", nil
	case string:
		return actual, nil
	case *Element:
		if text, ok := actual.Lookup(TextKey); ok {
			return AsText(text)
		}
		for _, key := range actual.Keys() {
			if !strings.HasPrefix(key, AttributePrefix) {
				return "", fmt.Errorf("expected text, but had element")
			}
		}
		return "", nil
	default:
		return "", fmt.Errorf("expected text, but had %T", value)
	}
}
