package omlflow_test

import (
	"context"
	"embed"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"
	"github.com/viant/omlflow"
	"github.com/viant/omlflow/model/flow"
	"github.com/viant/omlflow/service/meta"
	"github.com/viant/omlflow/service/registry/memory"
)

//go:embed testdata/*
var embedFS embed.FS

func TestService_Sync(t *testing.T) {
	t.Setenv("OMLFLOW_TEST_DESCRIPTION", "Scaled support vector classifier")
	ctx := context.Background()
	cfg, err := omlflow.LoadConfig(ctx, meta.New(nil, "embed:///testdata", &embedFS), "config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sklearn", cfg.Registry.VersionPackage)

	memoryRegistry := memory.New()
	srv, err := omlflow.New(ctx,
		omlflow.WithConfig(cfg),
		omlflow.WithCaller(memoryRegistry),
		omlflow.WithBaseURL("embed:///testdata"),
		omlflow.WithFsOptions(&embedFS),
	)
	require.NoError(t, err)

	aFlow, id, err := srv.Sync(ctx, "pipeline.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, "Scaled support vector classifier", aFlow.Description)
	assert.EqualValues(t, []string{"scaler", "svc"}, aFlow.Components.Keys())

	_, again, err := srv.Sync(ctx, "pipeline.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, again)
	existsPath := "flow/exists/sklearn.pipeline.Pipeline%28scaler=sklearn.preprocessing.StandardScaler%2Csvc=sklearn.svm.SVC%29/sklearn_1.3.0"
	assert.EqualValues(t, []string{existsPath, "flow/", existsPath}, memoryRegistry.Calls())
}

func TestService_SaveLoadFlow(t *testing.T) {
	ctx := context.Background()
	srv, err := omlflow.New(ctx, omlflow.WithConfig(&omlflow.Config{Registry: omlflow.RegistryConfig{URL: omlflow.MemoryRegistryURL, TimeoutMs: 1000}}),
		omlflow.WithBaseURL("mem://localhost/omlflow/flows"))
	require.NoError(t, err)

	aFlow, err := srv.CreateFromModel("name: sklearn.svm.SVC\nexternalVersion: sklearn==1.3.0\nparameters:\n  C: 1.0", nil)
	require.NoError(t, err)
	require.NoError(t, srv.SaveFlow(ctx, "svc", aFlow))

	loaded, err := srv.LoadFlow(ctx, "svc.xml")
	require.NoError(t, err)
	assert.True(t, aFlow.Equal(loaded))

	id, err := srv.Registry().EnsureExists(ctx, loaded)
	require.NoError(t, err)
	stored, err := srv.Registry().Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, aFlow.Equal(stored))
}

func TestService_StoreAPIKey(t *testing.T) {
	ctx := context.Background()
	cfg := omlflow.DefaultConfig()
	cfg.Registry.APIKeySecretURL = "mem://localhost/omlflow/secret/key"

	_, err := omlflow.New(ctx, omlflow.WithConfig(cfg))
	assert.Error(t, err, "missing secret should fail")

	srv, err := omlflow.New(ctx, omlflow.WithConfig(&omlflow.Config{Registry: omlflow.RegistryConfig{
		URL: omlflow.MemoryRegistryURL, TimeoutMs: 1000, APIKeySecretURL: cfg.Registry.APIKeySecretURL,
	}}))
	require.NoError(t, err)
	require.NoError(t, srv.StoreAPIKey(ctx, "abc123"))

	_, err = omlflow.New(ctx, omlflow.WithConfig(cfg))
	assert.NoError(t, err)

	noSecret, err := omlflow.New(ctx, omlflow.WithConfig(&omlflow.Config{Registry: omlflow.RegistryConfig{URL: omlflow.MemoryRegistryURL, TimeoutMs: 1000}}))
	require.NoError(t, err)
	assert.True(t, errors.Is(noSecret.StoreAPIKey(ctx, "abc123"), flow.ErrInvalidArgument))
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		config      *omlflow.Config
		expectErr   bool
	}{
		{description: "default", config: omlflow.DefaultConfig()},
		{description: "memory", config: &omlflow.Config{Registry: omlflow.RegistryConfig{URL: "memory://", TimeoutMs: 1}}},
		{description: "empty url", config: &omlflow.Config{Registry: omlflow.RegistryConfig{TimeoutMs: 1}}, expectErr: true},
		{description: "unsupported scheme", config: &omlflow.Config{Registry: omlflow.RegistryConfig{URL: "ftp://x", TimeoutMs: 1}}, expectErr: true},
		{description: "zero timeout", config: &omlflow.Config{Registry: omlflow.RegistryConfig{URL: "memory://"}}, expectErr: true},
		{description: "conflicting api key", config: &omlflow.Config{Registry: omlflow.RegistryConfig{URL: "memory://", TimeoutMs: 1, APIKey: "a", APIKeySecretURL: "mem://localhost/a"}}, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
