package converter

import (
	"errors"
	"fmt"

	"github.com/viant/omlflow/model/flow"
)

// ErrInvalidConversion is returned when a converter yields no flow
var ErrInvalidConversion = errors.New("converter: invalid conversion")

// Converter turns an in-memory model into its flow description
type Converter interface {
	Serialize(model interface{}) (*flow.Flow, error)
}

// Func adapts a function to Converter
type Func func(model interface{}) (*flow.Flow, error)

// Serialize calls f(model)
func (f Func) Serialize(model interface{}) (*flow.Flow, error) {
	return f(model)
}

// CreateFromModel builds a flow from a model with the supplied converter; a non nil description
// replaces the one produced by the converter
func CreateFromModel(model interface{}, converter Converter, description *string) (*flow.Flow, error) {
	if converter == nil {
		return nil, fmt.Errorf("%w: converter was nil", flow.ErrInvalidArgument)
	}
	ret, err := converter.Serialize(model)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %T: %w", model, err)
	}
	if ret == nil {
		return nil, fmt.Errorf("%w: %T converted to nil flow", ErrInvalidConversion, model)
	}
	if description != nil {
		ret.Description = *description
	}
	return ret, nil
}
