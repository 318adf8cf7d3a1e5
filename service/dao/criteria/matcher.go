package criteria

import (
	"github.com/viant/omlflow/service/dao"
)

// Match returns true when every parameter accepts the corresponding field value.
// A parameter naming an unknown field never matches.
func Match(fields map[string]string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		value, ok := fields[parameter.Name]
		if !ok || !parameter.Accepts(value) {
			return false
		}
	}
	return true
}
