package memory

import daoflow "github.com/viant/omlflow/service/dao/flow"

type Option func(*Registry)

// WithUploader sets the uploader stamped on stored flows
func WithUploader(uploader string) Option {
	return func(r *Registry) {
		r.uploader = uploader
	}
}

// WithCodec sets the flow XML codec
func WithCodec(codec *daoflow.Service) Option {
	return func(r *Registry) {
		r.codec = codec
	}
}
