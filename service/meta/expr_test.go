package meta

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

func TestExpandEnv(t *testing.T) {
	testCases := []struct {
		description string
		env         map[string]string
		input       string
		expected    string
	}{
		{description: "no expressions", input: "just a plain string", expected: "just a plain string"},
		{description: "single expression", env: map[string]string{"OMLFLOW_FOO": "bar"}, input: "value is ${env.OMLFLOW_FOO}", expected: "value is bar"},
		{description: "multiple expressions", env: map[string]string{"OMLFLOW_A": "1", "OMLFLOW_B": "2"}, input: "${env.OMLFLOW_A}-${env.OMLFLOW_B}-${env.OMLFLOW_A}", expected: "1-2-1"},
		{description: "unset variable becomes empty", input: "unset=${env.OMLFLOW_NOTSET}-end", expected: "unset=-end"},
		{description: "malformed missing closing brace", env: map[string]string{"OMLFLOW_X": "x"}, input: "start ${env.OMLFLOW_X and ${env.OMLFLOW_Y} end", expected: "start ${env.OMLFLOW_X and  end"},
		{description: "prefix only no key", input: "oops ${env.} done", expected: "oops  done"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tc.expected, ExpandEnv(tc.input))
		})
	}
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	t.Setenv("OMLFLOW_REGISTRY", "https://test.openml.org/api/v1/xml/")
	require.NoError(t, fs.Upload(ctx, "mem://localhost/omlflow/meta/config.yaml", file.DefaultFileOsMode,
		strings.NewReader("registry:\n  url: ${env.OMLFLOW_REGISTRY}\n")))

	srv := New(fs, "mem://localhost/omlflow/meta")
	var target struct {
		Registry struct {
			URL string `yaml:"url"`
		} `yaml:"registry"`
	}
	require.NoError(t, srv.Load(ctx, "config.yaml", &target))
	assert.Equal(t, "https://test.openml.org/api/v1/xml/", target.Registry.URL)

	assert.Error(t, srv.Load(ctx, "missing.yaml", &target))
}
