package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/pfconn/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidRefs(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		ref     string
		wantErr string
	}{
		{name: "empty", ref: "", wantErr: "secret ref is empty"},
		{name: "whitespace", ref: "   ", wantErr: "secret ref is empty"},
		{name: "scheme only", ref: "pfconn://", wantErr: "has no path"},
		{name: "absolute", ref: "/absolute/path", wantErr: "invalid secret ref"},
		{name: "traversal", ref: "../escape", wantErr: "invalid secret ref"},
		{name: "deep traversal", ref: "../../secret", wantErr: "invalid secret ref"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.ref, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	ref := domain.SecretRef("contoso-cosmos", "key")
	want := "top-secret"

	require.NoError(t, store.Put(context.Background(), ref, want))

	got, err := store.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	secretPath := filepath.Join(root, "pfconn", "connections", "contoso-cosmos", "key")
	info, err := os.Stat(secretPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), info.Mode().Perm())
}

func TestStorePutOverwritesExistingSecret(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ref := domain.SecretRef("aoai-connection", "api_key")

	require.NoError(t, store.Put(context.Background(), ref, "old"))
	require.NoError(t, store.Put(context.Background(), ref, "new"))

	got, err := store.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestStoreGetMissingSecretReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), domain.SecretRef("contoso-search", "api_key"))
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ref := domain.SecretRef("contoso-search", "api_key")

	require.NoError(t, store.Delete(context.Background(), ref))
	require.NoError(t, store.Delete(context.Background(), ref))
}
