package yml

import "github.com/viant/omlflow/model/flow"

type Option func(*Converter)

// WithNameResolver sets the name resolver of every converted flow
func WithNameResolver(resolver func(*flow.Flow) string) Option {
	return func(c *Converter) {
		c.nameResolver = resolver
	}
}
