package flow

// ParameterMeta holds optional descriptive information about a flow parameter
type ParameterMeta struct {
	DataType    *string `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Equal compares two meta records by value
func (m *ParameterMeta) Equal(other *ParameterMeta) bool {
	if m == nil || other == nil {
		return m.isEmpty() && other.isEmpty()
	}
	return equalString(m.DataType, other.DataType) && equalString(m.Description, other.Description)
}

func (m *ParameterMeta) isEmpty() bool {
	return m == nil || (m.DataType == nil && m.Description == nil)
}

func (m *ParameterMeta) clone() *ParameterMeta {
	if m == nil {
		return nil
	}
	return &ParameterMeta{DataType: cloneString(m.DataType), Description: cloneString(m.Description)}
}

// NewParameterMeta creates a meta record, empty strings are treated as unset
func NewParameterMeta(dataType, description string) *ParameterMeta {
	ret := &ParameterMeta{}
	if dataType != "" {
		ret.DataType = &dataType
	}
	if description != "" {
		ret.Description = &description
	}
	return ret
}

// Parameter represents a flat parameter record: name, default value and meta-info
type Parameter struct {
	Name         string         `json:"name" yaml:"name"`
	DefaultValue string         `json:"defaultValue" yaml:"defaultValue"`
	Meta         *ParameterMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Parameters is an ordered collection of parameter records
type Parameters []*Parameter

// Get retrieves a parameter by name
func (p Parameters) Get(name string) (*Parameter, bool) {
	for _, param := range p {
		if param.Name == name {
			return param, true
		}
	}
	return nil, false
}

// Names returns parameter names in order
func (p Parameters) Names() []string {
	result := make([]string, 0, len(p))
	for _, param := range p {
		result = append(result, param.Name)
	}
	return result
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
