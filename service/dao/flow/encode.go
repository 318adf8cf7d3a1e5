package flow

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/viant/omlflow/model/document"
	"github.com/viant/omlflow/model/flow"
)

const (
	// Namespace is the registry XML namespace bound to the "oml" prefix
	Namespace = "http://openml.org/openml"
	// RootElement is the flow document root
	RootElement = "oml:flow"
)

// Encode converts a flow into a document whose element order follows the registry schema
func Encode(aFlow *flow.Flow) (*document.Element, error) {
	if aFlow == nil {
		return nil, fmt.Errorf("flow was nil")
	}
	if err := aFlow.Validate(); err != nil {
		return nil, err
	}
	body, err := encodeFlow(aFlow)
	if err != nil {
		return nil, err
	}
	return document.NewElement().Put(RootElement, body), nil
}

// encodeFlow builds a flow body; nested component flows carry the namespace declaration too
func encodeFlow(aFlow *flow.Flow) (*document.Element, error) {
	ret := document.NewElement().Put("@xmlns:oml", Namespace)
	if aFlow.ID != nil {
		ret.Put("oml:id", strconv.Itoa(*aFlow.ID))
	}
	putOptional(ret, "oml:uploader", aFlow.Uploader)
	ret.Put("oml:name", aFlow.GetName())
	putOptional(ret, "oml:version", aFlow.Version)
	ret.Put("oml:external_version", aFlow.ExternalVersion)
	ret.Put("oml:description", aFlow.Description)
	putOptional(ret, "oml:upload_date", aFlow.UploadDate)
	putOptional(ret, "oml:language", aFlow.Language)
	putOptional(ret, "oml:dependencies", aFlow.Dependencies)

	var parameters []interface{}
	for _, param := range aFlow.ParameterList() {
		encoded, err := encodeParameter(param)
		if err != nil {
			return nil, fmt.Errorf("flow %v: %w", aFlow.Name, err)
		}
		parameters = append(parameters, encoded)
	}
	ret.Put("oml:parameter", parameters)

	var components []interface{}
	for _, identifier := range aFlow.Components.Keys() {
		if err := checkText("component identifier", identifier); err != nil {
			return nil, fmt.Errorf("flow %v: %w", aFlow.Name, err)
		}
		component, _ := aFlow.Components.Get(identifier)
		body, err := encodeFlow(component)
		if err != nil {
			return nil, fmt.Errorf("component %v: %w", identifier, err)
		}
		components = append(components, document.NewElement().
			Put("oml:identifier", identifier).
			Put("oml:flow", body))
	}
	ret.Put("oml:component", components)

	tags := make([]interface{}, 0, len(aFlow.Tags))
	for _, tag := range aFlow.Tags {
		tags = append(tags, tag)
	}
	ret.Put("oml:tag", tags)

	putOptional(ret, "oml:binary_url", aFlow.BinaryURL)
	putOptional(ret, "oml:binary_format", aFlow.BinaryFormat)
	putOptional(ret, "oml:binary_md5", aFlow.BinaryMD5)
	return ret, nil
}

func encodeParameter(param *flow.Parameter) (*document.Element, error) {
	ret := document.NewElement()
	if err := checkText("parameter name", param.Name); err != nil {
		return nil, err
	}
	ret.Put("oml:name", param.Name)
	meta := param.Meta
	if meta == nil {
		meta = &flow.ParameterMeta{}
	}
	if meta.DataType != nil {
		if err := checkText("parameter "+param.Name+" data type", *meta.DataType); err != nil {
			return nil, err
		}
		ret.Put("oml:data_type", *meta.DataType)
	}
	if err := checkText("parameter "+param.Name+" value", param.DefaultValue); err != nil {
		return nil, err
	}
	ret.Put("oml:default_value", param.DefaultValue)
	if meta.Description != nil {
		if err := checkText("parameter "+param.Name+" description", *meta.Description); err != nil {
			return nil, err
		}
		ret.Put("oml:description", *meta.Description)
	}
	return ret, nil
}

func putOptional(element *document.Element, key string, value *string) {
	if value != nil {
		element.Put(key, *value)
	}
}

// checkText verifies the value can be carried as XML character data
func checkText(what, value string) error {
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: %v %q is not valid utf-8", flow.ErrNotSerializable, what, value)
	}
	for _, r := range value {
		if !isXMLChar(r) {
			return fmt.Errorf("%w: %v %q contains character %U", flow.ErrNotSerializable, what, value, r)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
