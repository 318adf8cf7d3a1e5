package registry

import "context"

// Caller performs a registry API call. A nil or empty files map issues a read, otherwise
// the files are uploaded under their names. Any HTTP response is reported through status and
// body; err is reserved for transport failures.
type Caller interface {
	Call(ctx context.Context, path string, files map[string]string) (status int, body string, err error)
}

// CallerFunc adapts a function to Caller
type CallerFunc func(ctx context.Context, path string, files map[string]string) (int, string, error)

func (f CallerFunc) Call(ctx context.Context, path string, files map[string]string) (int, string, error) {
	return f(ctx, path, files)
}
