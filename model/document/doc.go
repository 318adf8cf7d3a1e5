// Package document defines an ordered, schema agnostic element tree and its XML rendering.
//
// Documents mirror the shape produced by XML-to-mapping converters: element names (with
// their namespace prefix) are keys, attributes are keys prefixed with "@", a repeated element
// becomes a list while a single occurrence stays a single value. Consumers that expect a
// repeated element should always read it through AsList or Element.Items.
package document
