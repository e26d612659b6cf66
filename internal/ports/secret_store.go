package ports

import "context"

// SecretStore holds secret values addressed by reference, typically built
// with domain.SecretRef.
type SecretStore interface {
	Get(ctx context.Context, ref string) (string, error)
	Put(ctx context.Context, ref string, value string) error
	Delete(ctx context.Context, ref string) error
}
