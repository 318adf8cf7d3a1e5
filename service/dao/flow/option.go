package flow

import "github.com/viant/afs"

type Option func(*Service)

// WithFS sets the storage service used by Load and Save
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithIndent sets XML indentation, 0 renders compact documents
func WithIndent(indent int) Option {
	return func(s *Service) {
		s.indent = indent
	}
}
