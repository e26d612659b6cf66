package ports

import (
	"context"

	"github.com/bnema/pfconn/internal/domain"
)

// ConnectionRepository persists connection records keyed by name.
type ConnectionRepository interface {
	Get(ctx context.Context, name string) (domain.ConnectionRecord, error)
	List(ctx context.Context) ([]domain.ConnectionRecord, error)
	// Save inserts the record or replaces the one with the same name.
	Save(ctx context.Context, record domain.ConnectionRecord) error
	Delete(ctx context.Context, name string) error
}
