package yml

import (
	"fmt"

	"github.com/viant/omlflow/internal/yml"
	"github.com/viant/omlflow/model/flow"
	"github.com/viant/toolbox"
	"go.alis.build/utils"
	"gopkg.in/yaml.v3"
)

// NoneValue is the registry convention for an unset default
const NoneValue = "None"

// Converter creates flows from YAML model descriptions, e.g.
//
//	name: sklearn.pipeline.Pipeline
//	externalVersion: sklearn==1.3.0
//	parameters:
//	  memory: null
//	  steps:
//	    default: [scaler, svc]
//	    dataType: list
//	components:
//	  svc:
//	    name: sklearn.svm.SVC
//	    externalVersion: sklearn==1.3.0
type Converter struct {
	nameResolver func(*flow.Flow) string
}

// Serialize converts a YAML description supplied as []byte, string, *yaml.Node or yaml.Node
func (c *Converter) Serialize(model interface{}) (*flow.Flow, error) {
	var (
		node *yaml.Node
		err  error
	)
	switch actual := model.(type) {
	case []byte:
		if node, err = parse(actual); err != nil {
			return nil, err
		}
	case string:
		if node, err = parse([]byte(actual)); err != nil {
			return nil, err
		}
	case *yaml.Node:
		node = actual
	case yaml.Node:
		node = &actual
	default:
		return nil, fmt.Errorf("%w: unsupported model description type %T", flow.ErrInvalidArgument, model)
	}
	root := (*yml.Node)(node).Unwrap()
	ret, err := c.parseFlow(root, "")
	if err != nil {
		return nil, err
	}
	ret.Model = model
	return ret, nil
}

func parse(data []byte) (*yaml.Node, error) {
	node := &yaml.Node{}
	if err := yaml.Unmarshal(data, node); err != nil {
		return nil, fmt.Errorf("failed to parse model description: %w", err)
	}
	return node, nil
}

func (c *Converter) parseFlow(node *yml.Node, path string) (*flow.Flow, error) {
	var (
		name, externalVersion string
		options               []flow.Option
		parameters            = utils.NewOrderedMap[string, string]()
		metaInfo              = utils.NewOrderedMap[string, *flow.ParameterMeta]()
		components            = utils.NewOrderedMap[string, *flow.Flow]()
	)
	err := node.Pairs(func(key string, value *yml.Node) error {
		switch key {
		case "name":
			name = scalarText(value)
		case "externalVersion":
			externalVersion = scalarText(value)
		case "description":
			options = append(options, flow.WithDescription(scalarText(value)))
		case "language":
			options = append(options, flow.WithLanguage(scalarText(value)))
		case "dependencies":
			options = append(options, flow.WithDependencies(scalarText(value)))
		case "tags":
			var tags []string
			if err := value.Items(func(_ int, item *yml.Node) error {
				tags = append(tags, scalarText(item))
				return nil
			}); err != nil {
				return fmt.Errorf("tags: %w", err)
			}
			options = append(options, flow.WithTags(tags...))
		case "parameters":
			if value.IsNull() {
				return nil
			}
			return value.Pairs(func(paramName string, param *yml.Node) error {
				defaultValue, meta, err := parseParameter(param)
				if err != nil {
					return fmt.Errorf("parameter %v: %w", paramName, err)
				}
				parameters.Set(paramName, defaultValue)
				metaInfo.Set(paramName, meta)
				return nil
			})
		case "components":
			if value.IsNull() {
				return nil
			}
			return value.Pairs(func(identifier string, component *yml.Node) error {
				child, err := c.parseFlow(component, joinPath(path, identifier))
				if err != nil {
					return err
				}
				components.Set(identifier, child)
				return nil
			})
		default:
			return fmt.Errorf("unsupported key: %v", key)
		}
		return nil
	})
	if err != nil {
		return nil, pathError(path, err)
	}
	if name == "" {
		return nil, pathError(path, fmt.Errorf("%w: name", flow.ErrMissingField))
	}
	if externalVersion == "" {
		return nil, pathError(path, fmt.Errorf("%w: externalVersion", flow.ErrMissingField))
	}
	options = append(options, flow.WithParameters(parameters, metaInfo), flow.WithComponents(components))
	if c.nameResolver != nil {
		options = append(options, flow.WithNameResolver(c.nameResolver))
	}
	ret, err := flow.New(name, externalVersion, options...)
	if err != nil {
		return nil, pathError(path, err)
	}
	return ret, nil
}

// parseParameter reads either a default value or a mapping of default, dataType and description
func parseParameter(node *yml.Node) (string, *flow.ParameterMeta, error) {
	if node.Kind != yaml.MappingNode || node.Lookup("default") == nil && node.Lookup("dataType") == nil && node.Lookup("description") == nil {
		defaultValue, err := valueText(node)
		return defaultValue, &flow.ParameterMeta{}, err
	}
	defaultValue := NoneValue
	meta := &flow.ParameterMeta{}
	err := node.Pairs(func(key string, value *yml.Node) error {
		var err error
		switch key {
		case "default":
			defaultValue, err = valueText(value)
		case "dataType":
			text := scalarText(value)
			meta.DataType = &text
		case "description":
			text := scalarText(value)
			meta.Description = &text
		default:
			err = fmt.Errorf("unsupported key: %v", key)
		}
		return err
	})
	return defaultValue, meta, err
}

// valueText stringifies a default value: scalars as written, null as None and collections in flow style
func valueText(node *yml.Node) (string, error) {
	switch {
	case node.IsNull():
		return NoneValue, nil
	case node.IsScalar():
		return scalarText(node), nil
	default:
		return node.FlowText()
	}
}

func scalarText(node *yml.Node) string {
	if node.IsNull() {
		return ""
	}
	if node.Tag == "!!float" {
		return node.Value
	}
	return toolbox.AsString(node.Interface())
}

func joinPath(path, identifier string) string {
	if path == "" {
		return identifier
	}
	return path + "/" + identifier
}

func pathError(path string, err error) error {
	if path == "" {
		return err
	}
	return fmt.Errorf("component %v: %w", path, err)
}

// New creates a YAML description converter
func New(options ...Option) *Converter {
	ret := &Converter{}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
