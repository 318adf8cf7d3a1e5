package dao

import (
	"context"
)

// Service persists registry entities of type T under their key K
type Service[K comparable, T any] interface {
	// Save inserts or replaces t
	Save(ctx context.Context, t *T) error
	// Load returns ErrNotFound for an unknown key
	Load(ctx context.Context, key K) (*T, error)
	Delete(ctx context.Context, key K) error
	// List returns entities matching all parameters, in insertion order
	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
