package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/omlflow/service/dao"
)

type record struct {
	ID   int
	Name string
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[int, record](func(r *record) int { return r.ID }, func(r *record, parameters []*dao.Parameter) bool {
		return parameters[0].Accepts(r.Name)
	})
	for _, r := range []*record{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "a"}} {
		require.NoError(t, s.Save(ctx, r))
	}
	assert.True(t, errors.Is(s.Save(ctx, nil), dao.ErrNilEntity))

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, []*record{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "a"}}, all)

	filtered, err := s.List(ctx, dao.NewParameter("name", "a"))
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	loaded, err := s.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.Name)

	require.NoError(t, s.Delete(ctx, 1))
	_, err = s.Load(ctx, 1)
	assert.True(t, errors.Is(err, dao.ErrNotFound))
}
