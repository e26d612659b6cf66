package ports

import (
	"context"

	"github.com/bnema/pfconn/internal/domain"
)

// ConnectionVerifier probes the service behind a connection with its
// resolved credentials.
type ConnectionVerifier interface {
	Verify(ctx context.Context, connection domain.Connection) error
}
