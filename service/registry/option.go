package registry

import daoflow "github.com/viant/omlflow/service/dao/flow"

type Option func(*Service)

// WithVersionFunc sets how EnsureExists computes the looked up version
func WithVersionFunc(fn VersionFunc) Option {
	return func(s *Service) {
		s.versionFunc = fn
	}
}

// WithCodec sets the flow XML codec
func WithCodec(codec *daoflow.Service) Option {
	return func(s *Service) {
		s.codec = codec
	}
}
