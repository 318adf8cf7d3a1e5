package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/omlflow/internal/clock"
	"github.com/viant/omlflow/model/flow"
	"github.com/viant/omlflow/service/registry"
)

func newFlow(t *testing.T, name, externalVersion string) *flow.Flow {
	ret, err := flow.New(name, externalVersion, flow.WithDescription("flow "+name), flow.WithTags("test"))
	require.NoError(t, err)
	ret.AddParameter("alpha", "0.5", flow.NewParameterMeta("float", "regularization"))
	return ret
}

func TestRegistry_EndToEnd(t *testing.T) {
	clock.NowFunc = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }
	defer func() { clock.NowFunc = time.Now }()

	ctx := context.Background()
	memoryRegistry := New(WithUploader("7"))
	srv := registry.New(memoryRegistry)

	pipeline := newFlow(t, "sklearn.pipeline.Pipeline", "sklearn==1.3.0")
	pipeline.AddComponent("ridge", newFlow(t, "sklearn.linear_model.Ridge", "sklearn==1.3.0"))

	id, err := srv.EnsureExists(ctx, pipeline)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	again, err := srv.EnsureExists(ctx, newFlow(t, "sklearn.pipeline.Pipeline", "sklearn==1.3.0"))
	require.NoError(t, err)
	assert.Equal(t, 1, again)

	otherVersion, err := srv.EnsureExists(ctx, newFlow(t, "sklearn.pipeline.Pipeline", "sklearn==1.4.0"))
	require.NoError(t, err)
	assert.Equal(t, 2, otherVersion)

	assert.EqualValues(t, []string{
		"flow/exists/sklearn.pipeline.Pipeline/sklearn==1.3.0",
		"flow/",
		"flow/exists/sklearn.pipeline.Pipeline/sklearn==1.3.0",
		"flow/exists/sklearn.pipeline.Pipeline/sklearn==1.4.0",
		"flow/",
	}, memoryRegistry.Calls())

	stored, err := srv.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, pipeline.Equal(stored))
	assert.Equal(t, "7", *stored.Uploader)
	assert.Equal(t, "1", *stored.Version)
	assert.Equal(t, "2024-05-01T10:30:00", *stored.UploadDate)
	_, ok := stored.Component("ridge")
	assert.True(t, ok)

	second, err := srv.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "2", *second.Version)
}

func TestRegistry_Errors(t *testing.T) {
	ctx := context.Background()
	memoryRegistry := New()
	srv := registry.New(memoryRegistry)

	_, err := srv.Publish(ctx, newFlow(t, "a", "1.0"))
	require.NoError(t, err)

	testCases := []struct {
		description string
		call        func() error
		expectCode  int
	}{
		{
			description: "duplicate upload",
			call: func() error {
				_, err := srv.Publish(ctx, newFlow(t, "a", "1.0"))
				return err
			},
			expectCode: 412,
		},
		{
			description: "unknown flow",
			call: func() error {
				_, err := srv.Get(ctx, 99)
				return err
			},
			expectCode: 412,
		},
		{
			description: "unknown call",
			call: func() error {
				status, _, err := memoryRegistry.Call(ctx, "run/1", nil)
				if err != nil {
					return err
				}
				return &registry.RemoteError{StatusCode: status}
			},
			expectCode: 404,
		},
		{
			description: "missing description",
			call: func() error {
				status, _, err := memoryRegistry.Call(ctx, "flow/", map[string]string{"other": "x"})
				if err != nil {
					return err
				}
				return &registry.RemoteError{StatusCode: status}
			},
			expectCode: 400,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.call()
			remoteErr := &registry.RemoteError{}
			require.True(t, errors.As(err, &remoteErr), err)
			assert.Equal(t, tc.expectCode, remoteErr.StatusCode)
		})
	}
}
