package flow

import (
	"fmt"
	"sort"

	"go.alis.build/utils"
)

// Flow represents a machine learning pipeline or model description exchanged with the registry.
// Name and ExternalVersion together identify a flow on the registry.
type Flow struct {
	// ID is assigned by the registry on publish
	ID *int `json:"id,omitempty" yaml:"id,omitempty"`
	// Uploader is the registry user who uploaded the flow
	Uploader *string `json:"uploader,omitempty" yaml:"uploader,omitempty"`

	Name string `json:"name" yaml:"name"`

	// Version is the registry version of the flow
	Version *string `json:"version,omitempty" yaml:"version,omitempty"`

	// ExternalVersion is the version of the software the flow is implemented in
	ExternalVersion string `json:"externalVersion" yaml:"externalVersion"`

	Description string  `json:"description" yaml:"description"`
	UploadDate  *string `json:"uploadDate,omitempty" yaml:"uploadDate,omitempty"`

	// Language is the natural language of the description
	Language *string `json:"language,omitempty" yaml:"language,omitempty"`

	// Dependencies lists runtime library requirements with version pins
	Dependencies *string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// Parameters maps parameter name to its default value, order is the wire order
	Parameters *utils.OrderedMap[string, string] `json:"-" yaml:"-"`

	// ParametersMetaInfo must hold exactly the keys of Parameters
	ParametersMetaInfo *utils.OrderedMap[string, *ParameterMeta] `json:"-" yaml:"-"`

	// Components maps component identifier to a sub-flow
	Components *utils.OrderedMap[string, *Flow] `json:"-" yaml:"-"`

	Tags []string `json:"tags" yaml:"tags"`

	BinaryURL    *string `json:"binaryURL,omitempty" yaml:"binaryURL,omitempty"`
	BinaryFormat *string `json:"binaryFormat,omitempty" yaml:"binaryFormat,omitempty"`
	BinaryMD5    *string `json:"binaryMD5,omitempty" yaml:"binaryMD5,omitempty"`

	// Model is the in-memory model described by this flow, never serialized nor compared
	Model interface{} `json:"-" yaml:"-"`

	nameResolver func(*Flow) string
	invalid      []string
}

// New creates a flow, validating parameters, meta-info and components containers
func New(name, externalVersion string, options ...Option) (*Flow, error) {
	ret := &Flow{
		Name:               name,
		ExternalVersion:    externalVersion,
		Parameters:         utils.NewOrderedMap[string, string](),
		ParametersMetaInfo: utils.NewOrderedMap[string, *ParameterMeta](),
		Components:         utils.NewOrderedMap[string, *Flow](),
		Tags:               []string{},
	}
	for _, opt := range options {
		opt(ret)
	}
	if len(ret.invalid) > 0 {
		return nil, fmt.Errorf("%w: %v must be an ordered map", ErrInvalidContainer, ret.invalid)
	}
	ret.invalid = nil
	if ret.Tags == nil {
		ret.Tags = []string{}
	}
	if err := ret.checkParameterKeys(); err != nil {
		return nil, err
	}
	return ret, nil
}

// GetName returns the flow name, honouring a custom name resolver when set
func (f *Flow) GetName() string {
	if f.nameResolver != nil {
		return f.nameResolver(f)
	}
	return f.Name
}

// AddParameter adds or replaces a parameter together with its meta-info
func (f *Flow) AddParameter(name, defaultValue string, meta *ParameterMeta) *Flow {
	if f.Parameters == nil {
		f.Parameters = utils.NewOrderedMap[string, string]()
	}
	if f.ParametersMetaInfo == nil {
		f.ParametersMetaInfo = utils.NewOrderedMap[string, *ParameterMeta]()
	}
	if meta == nil {
		meta = &ParameterMeta{}
	}
	f.Parameters.Set(name, defaultValue)
	f.ParametersMetaInfo.Set(name, meta)
	return f
}

// AddComponent adds or replaces a named sub-flow
func (f *Flow) AddComponent(identifier string, component *Flow) *Flow {
	if f.Components == nil {
		f.Components = utils.NewOrderedMap[string, *Flow]()
	}
	f.Components.Set(identifier, component)
	return f
}

// Component returns a sub-flow by identifier
func (f *Flow) Component(identifier string) (*Flow, bool) {
	if f.Components == nil {
		return nil, false
	}
	return f.Components.Get(identifier)
}

// Parameter returns a parameter record by name
func (f *Flow) Parameter(name string) (*Parameter, bool) {
	if f.Parameters == nil {
		return nil, false
	}
	value, ok := f.Parameters.Get(name)
	if !ok {
		return nil, false
	}
	ret := &Parameter{Name: name, DefaultValue: value}
	if f.ParametersMetaInfo != nil {
		ret.Meta, _ = f.ParametersMetaInfo.Get(name)
	}
	return ret, true
}

// ParameterList returns parameter records in parameter order
func (f *Flow) ParameterList() Parameters {
	if f.Parameters == nil {
		return Parameters{}
	}
	ret := make(Parameters, 0, f.Parameters.Len())
	for _, name := range f.Parameters.Keys() {
		param, _ := f.Parameter(name)
		ret = append(ret, param)
	}
	return ret
}

// Validate checks the parameter key invariant on the flow and all its components
func (f *Flow) Validate() error {
	if f.Parameters == nil || f.ParametersMetaInfo == nil || f.Components == nil {
		return fmt.Errorf("%w: flow %v has nil parameters, meta info or components", ErrInvalidContainer, f.Name)
	}
	if err := f.checkParameterKeys(); err != nil {
		return fmt.Errorf("flow %v: %w", f.Name, err)
	}
	var err error
	f.Components.Range(func(_ int, identifier string, component *Flow) bool {
		if component == nil {
			err = fmt.Errorf("%w: component %v of flow %v is nil", ErrInvalidContainer, identifier, f.Name)
			return false
		}
		if cErr := component.Validate(); cErr != nil {
			err = fmt.Errorf("component %v: %w", identifier, cErr)
			return false
		}
		return true
	})
	return err
}

func (f *Flow) checkParameterKeys() error {
	paramKeys := keySet(f.Parameters.Keys())
	metaKeys := keySet(f.ParametersMetaInfo.Keys())
	mismatch := &KeyMismatchError{
		OnlyInParameters: difference(paramKeys, metaKeys),
		OnlyInMetaInfo:   difference(metaKeys, paramKeys),
	}
	if len(mismatch.OnlyInParameters) > 0 || len(mismatch.OnlyInMetaInfo) > 0 {
		return mismatch
	}
	return nil
}

// Clone creates a deep copy of the flow. Model is shared, not copied.
func (f *Flow) Clone() *Flow {
	if f == nil {
		return nil
	}
	clone := &Flow{
		ID:                 cloneInt(f.ID),
		Uploader:           cloneString(f.Uploader),
		Name:               f.Name,
		Version:            cloneString(f.Version),
		ExternalVersion:    f.ExternalVersion,
		Description:        f.Description,
		UploadDate:         cloneString(f.UploadDate),
		Language:           cloneString(f.Language),
		Dependencies:       cloneString(f.Dependencies),
		Parameters:         utils.NewOrderedMap[string, string](),
		ParametersMetaInfo: utils.NewOrderedMap[string, *ParameterMeta](),
		Components:         utils.NewOrderedMap[string, *Flow](),
		Tags:               append([]string{}, f.Tags...),
		BinaryURL:          cloneString(f.BinaryURL),
		BinaryFormat:       cloneString(f.BinaryFormat),
		BinaryMD5:          cloneString(f.BinaryMD5),
		Model:              f.Model,
		nameResolver:       f.nameResolver,
	}
	if f.Parameters != nil {
		f.Parameters.Range(func(_ int, key string, value string) bool {
			clone.Parameters.Set(key, value)
			return true
		})
	}
	if f.ParametersMetaInfo != nil {
		f.ParametersMetaInfo.Range(func(_ int, key string, value *ParameterMeta) bool {
			clone.ParametersMetaInfo.Set(key, value.clone())
			return true
		})
	}
	if f.Components != nil {
		f.Components.Range(func(_ int, key string, value *Flow) bool {
			clone.Components.Set(key, value.Clone())
			return true
		})
	}
	return clone
}

func keySet(keys []string) map[string]bool {
	ret := make(map[string]bool, len(keys))
	for _, k := range keys {
		ret[k] = true
	}
	return ret
}

func difference(a, b map[string]bool) []string {
	var ret []string
	for k := range a {
		if !b[k] {
			ret = append(ret, k)
		}
	}
	sort.Strings(ret)
	return ret
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
