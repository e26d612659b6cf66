package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/pfconn/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cosmosKeyRef = "pfconn://connections/contoso-cosmos/key"

func TestStorePutUsesPassInsertWithMappedPath(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, context.Background(), ctx)
			assert.Equal(t, []string{"insert", "-m", "-f", "pfconn/connections/contoso-cosmos/key"}, args)
			assert.Equal(t, "top-secret\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), cosmosKeyRef, "top-secret")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "pfconn/connections/contoso-cosmos/key"}, args)
			assert.Empty(t, input)
			return "top-secret\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), cosmosKeyRef)
	require.NoError(t, err)
	assert.Equal(t, "top-secret", value)
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: pfconn/connections/contoso-cosmos/key is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), cosmosKeyRef)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "pfconn/connections/contoso-cosmos/key"}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Delete(context.Background(), cosmosKeyRef))
}

func TestStoreDeleteReportsMissingEntryAsNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: pfconn/connections/contoso-cosmos/key is not in the password store.", errors.New("exit status 1")
		},
	}

	err := store.Delete(context.Background(), cosmosKeyRef)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass delete")
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed: No secret key", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), cosmosKeyRef)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "pfconn/connections/contoso-cosmos/key")
	assert.ErrorContains(t, err, "decryption failed")
}

func TestStoreRejectsEmptyRefWithoutRunningPass(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatalf("pass must not run for an empty ref")
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), " ", "value")
	require.Error(t, err)
}
