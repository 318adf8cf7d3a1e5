package secret

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestService_SecureReveal(t *testing.T) {
	ctx := context.Background()
	srv := New()
	URL := "mem://localhost/omlflow/secret/apikey"

	require.NoError(t, srv.Secure(ctx, URL, "", "c1994bdb7ecb3c6f3c8f3b35f4b47f1f"))
	stored, err := afs.New().DownloadWithURL(ctx, URL)
	require.NoError(t, err)
	assert.NotContains(t, string(stored), "c1994bdb7ecb3c6f3c8f3b35f4b47f1f")

	revealed, err := srv.Reveal(ctx, URL, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "c1994bdb7ecb3c6f3c8f3b35f4b47f1f", revealed)

	assert.Error(t, srv.Secure(ctx, URL, "", ""))
	_, err = srv.Reveal(ctx, "mem://localhost/omlflow/secret/missing", "")
	assert.Error(t, err)
}
