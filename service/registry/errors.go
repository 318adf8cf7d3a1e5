package registry

import (
	"errors"
	"fmt"
)

// ErrRemote is matched by every RemoteError
var ErrRemote = errors.New("registry: remote error")

// RemoteError represents a non-success registry response
type RemoteError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("registry: %v returned status %v: %v", e.Path, e.StatusCode, e.Body)
}

// Is reports whether target is ErrRemote
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}
