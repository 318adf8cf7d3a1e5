package flow

import (
	"fmt"
	"strconv"

	"github.com/viant/omlflow/model/document"
	"github.com/viant/omlflow/model/flow"
	"go.alis.build/utils"
)

// Decode converts a flow document, as produced by Encode, back into a flow.
// Any missing mandatory field, at any component depth, fails the whole decoding.
func Decode(doc *document.Element) (*flow.Flow, error) {
	body, ok := doc.Element(RootElement)
	if !ok {
		return nil, fmt.Errorf("%w: %v", flow.ErrMissingField, RootElement)
	}
	return decodeFlow(body, "")
}

func decodeFlow(body *document.Element, path string) (*flow.Flow, error) {
	mandatory := map[string]string{}
	for _, key := range []string{"name", "external_version"} {
		value, ok, err := body.Text("oml:" + key)
		if err != nil {
			return nil, fieldError(path, err)
		}
		if !ok {
			return nil, fieldError(path, fmt.Errorf("%w: oml:%v", flow.ErrMissingField, key))
		}
		mandatory[key] = value
	}

	var options []flow.Option
	optional := map[string]func(string) flow.Option{
		"uploader":      flow.WithUploader,
		"description":   flow.WithDescription,
		"upload_date":   flow.WithUploadDate,
		"language":      flow.WithLanguage,
		"dependencies":  flow.WithDependencies,
		"version":       flow.WithVersion,
		"binary_url":    func(v string) flow.Option { return func(f *flow.Flow) { f.BinaryURL = &v } },
		"binary_format": func(v string) flow.Option { return func(f *flow.Flow) { f.BinaryFormat = &v } },
		"binary_md5":    func(v string) flow.Option { return func(f *flow.Flow) { f.BinaryMD5 = &v } },
	}
	for _, key := range []string{"uploader", "description", "upload_date", "language", "dependencies", "version", "binary_url", "binary_format", "binary_md5"} {
		value, ok, err := body.Text("oml:" + key)
		if err != nil {
			return nil, fieldError(path, err)
		}
		if ok {
			options = append(options, optional[key](value))
		}
	}

	id, ok, err := body.Text("oml:id")
	if err != nil {
		return nil, fieldError(path, err)
	}
	if ok {
		flowID, err := strconv.Atoi(id)
		if err != nil {
			return nil, fieldError(path, fmt.Errorf("invalid oml:id %q: %w", id, err))
		}
		options = append(options, flow.WithID(flowID))
	}

	parameters := utils.NewOrderedMap[string, string]()
	metaInfo := utils.NewOrderedMap[string, *flow.ParameterMeta]()
	for i, item := range body.Items("oml:parameter") {
		param, ok := item.(*document.Element)
		if !ok {
			return nil, fieldError(path, fmt.Errorf("oml:parameter[%v] should be an element, but had %T", i, item))
		}
		name, err := requiredText(param, "oml:name")
		if err != nil {
			return nil, fieldError(path, fmt.Errorf("oml:parameter[%v]: %w", i, err))
		}
		defaultValue, err := requiredText(param, "oml:default_value")
		if err != nil {
			return nil, fieldError(path, fmt.Errorf("oml:parameter %v: %w", name, err))
		}
		meta := &flow.ParameterMeta{}
		if meta.Description, err = optionalText(param, "oml:description"); err != nil {
			return nil, fieldError(path, fmt.Errorf("oml:parameter %v: %w", name, err))
		}
		if meta.DataType, err = optionalText(param, "oml:data_type"); err != nil {
			return nil, fieldError(path, fmt.Errorf("oml:parameter %v: %w", name, err))
		}
		parameters.Set(name, defaultValue)
		metaInfo.Set(name, meta)
	}
	options = append(options, flow.WithParameters(parameters, metaInfo))

	components := utils.NewOrderedMap[string, *flow.Flow]()
	for i, item := range body.Items("oml:component") {
		component, ok := item.(*document.Element)
		if !ok {
			return nil, fieldError(path, fmt.Errorf("oml:component[%v] should be an element, but had %T", i, item))
		}
		identifier, err := requiredText(component, "oml:identifier")
		if err != nil {
			return nil, fieldError(path, fmt.Errorf("oml:component[%v]: %w", i, err))
		}
		childBody, ok := component.Element(RootElement)
		if !ok {
			return nil, fieldError(joinPath(path, identifier), fmt.Errorf("%w: %v", flow.ErrMissingField, RootElement))
		}
		child, err := decodeFlow(childBody, joinPath(path, identifier))
		if err != nil {
			return nil, err
		}
		components.Set(identifier, child)
	}
	options = append(options, flow.WithComponents(components))

	var tags []string
	for i, item := range body.Items("oml:tag") {
		tag, err := document.AsText(item)
		if err != nil {
			return nil, fieldError(path, fmt.Errorf("oml:tag[%v]: %w", i, err))
		}
		tags = append(tags, tag)
	}
	options = append(options, flow.WithTags(tags...))

	ret, err := flow.New(mandatory["name"], mandatory["external_version"], options...)
	if err != nil {
		return nil, fieldError(path, err)
	}
	return ret, nil
}

func requiredText(element *document.Element, key string) (string, error) {
	value, ok, err := element.Text(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %v", flow.ErrMissingField, key)
	}
	return value, nil
}

func optionalText(element *document.Element, key string) (*string, error) {
	value, ok, err := element.Text(key)
	if err != nil || !ok {
		return nil, err
	}
	return &value, nil
}

func joinPath(path, identifier string) string {
	if path == "" {
		return identifier
	}
	return path + "/" + identifier
}

func fieldError(path string, err error) error {
	if path == "" {
		return err
	}
	return fmt.Errorf("component %v: %w", path, err)
}
