package dao

// Parameter is a List criterion: the named field must equal one of Values
type Parameter struct {
	Name   string
	Values []string
}

// Accepts returns true if value is one of the accepted values
func (p *Parameter) Accepts(value string) bool {
	for _, candidate := range p.Values {
		if candidate == value {
			return true
		}
	}
	return false
}

// NewParameter creates a criterion accepting any of values
func NewParameter(name string, values ...string) *Parameter {
	return &Parameter{Name: name, Values: values}
}
