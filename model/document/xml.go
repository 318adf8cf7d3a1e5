package document

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Declaration is emitted as the first line of a marshalled document
const Declaration = `version="1.0" encoding="utf-8"`

// Marshal renders a document with a single root field into XML, prefixed by an XML declaration.
// Indent <= 0 produces compact output.
func Marshal(doc *Element, indent int) ([]byte, error) {
	if doc == nil || doc.Len() != 1 {
		return nil, fmt.Errorf("document should have exactly one root element")
	}
	rootKey := doc.Keys()[0]
	rootValue, _ := doc.Lookup(rootKey)
	if _, ok := rootValue.([]interface{}); ok {
		return nil, fmt.Errorf("document root %v should not be repeated", rootKey)
	}
	xmlDoc := etree.NewDocument()
	xmlDoc.CreateProcInst("xml", Declaration)
	if err := writeValue(&xmlDoc.Element, rootKey, rootValue); err != nil {
		return nil, err
	}
	if indent > 0 {
		xmlDoc.Indent(indent)
	}
	return xmlDoc.WriteToBytes()
}

// Unmarshal parses XML into a document keyed by qualified element names. Repeated sibling
// elements are collected into a list, a single occurrence stays a single value.
func Unmarshal(data []byte) (*Element, error) {
	xmlDoc := etree.NewDocument()
	if err := xmlDoc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse xml: %w", err)
	}
	root := xmlDoc.Root()
	if root == nil {
		return nil, fmt.Errorf("failed to parse xml: missing root element")
	}
	return NewElement().Put(root.FullTag(), readValue(root)), nil
}

func writeValue(parent *etree.Element, key string, value interface{}) error {
	if strings.HasPrefix(key, AttributePrefix) {
		text, err := AsText(value)
		if err != nil {
			return fmt.Errorf("attribute %v: %w", key, err)
		}
		parent.CreateAttr(key[len(AttributePrefix):], text)
		return nil
	}
	if key == TextKey {
		text, err := AsText(value)
		if err != nil {
			return fmt.Errorf("%v: %w", key, err)
		}
		parent.SetText(text)
		return nil
	}
	switch actual := value.(type) {
	case nil:
		parent.CreateElement(key)
	case string:
		parent.CreateElement(key).SetText(actual)
	case *Element:
		child := parent.CreateElement(key)
		return actual.Pairs(func(childKey string, childValue interface{}) error {
			return writeValue(child, childKey, childValue)
		})
	case []interface{}, []string, []*Element:
		for _, item := range AsList(actual) {
			if _, nested := item.([]interface{}); nested {
				return fmt.Errorf("%v: nested lists are not supported", key)
			}
			if err := writeValue(parent, key, item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%v: unsupported value type %T", key, value)
	}
	return nil
}

func readValue(element *etree.Element) interface{} {
	children := element.ChildElements()
	if len(element.Attr) == 0 && len(children) == 0 {
		if text := element.Text(); text != "" {
			return text
		}
		return nil
	}
	ret := NewElement()
	for _, attr := range element.Attr {
		ret.Put(AttributePrefix+attr.FullKey(), attr.Value)
	}
	text := element.Text()
	if len(children) > 0 {
		text = strings.TrimSpace(text)
	}
	if text != "" {
		ret.Put(TextKey, text)
	}
	for _, child := range children {
		ret.Append(child.FullTag(), readValue(child))
	}
	return ret
}
