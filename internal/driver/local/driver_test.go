package local_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/internal/driver/local"
)

func TestDriverGetContent(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "site")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "secret.txt"), []byte("secret"), 0o644))

	d := local.NewDriver(root)
	ctx := context.Background()
	assert.Equal(t, "local", d.Name())

	b, err := d.GetContent(ctx, "/docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(b))

	b, err = d.GetContent(ctx, "docs/./a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(b))

	_, err = d.GetContent(ctx, "../secret.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = d.GetContent(ctx, "/docs")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = d.GetContent(ctx, "/missing.html")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
