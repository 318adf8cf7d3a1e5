package idgen

import "github.com/google/uuid"

// DefaultFunc generates a random UUID
var DefaultFunc = func() string { return uuid.New().String() }

// NewFunc generates identifiers, tests may replace it
var NewFunc = DefaultFunc

// New returns a new unique identifier
func New() string { return NewFunc() }
