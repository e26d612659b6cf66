package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/pfconn/internal/adapters/secrets/file"
	passstore "github.com/bnema/pfconn/internal/adapters/secrets/pass"
	"github.com/bnema/pfconn/internal/domain"
	"github.com/bnema/pfconn/internal/ports"
	"github.com/go-logr/logr"
)

// Store reads and writes through primary and falls back to fallback when the
// primary fails. Deletes clear both backends: a secret written while the
// primary was down lives only in the fallback.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   logr.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) *Store {
	store, err := NewStoreChecked(primary, fallback, logr.Discard())
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore, logger logr.Logger) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback, logger: logger}, nil
}

// NewPassFirstWithFileFallback chains pass(1) with 0600 files under fileRoot.
func NewPassFirstWithFileFallback(fileRoot string, logger logr.Logger) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot), logger.WithName("secrets"))
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	return s.withFallback("put", ref, func(backend ports.SecretStore) error {
		return backend.Put(ctx, ref, value)
	})
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	var value string
	err := s.withFallback("get", ref, func(backend ports.SecretStore) error {
		v, err := backend.Get(ctx, ref)
		if err == nil {
			value = v
		}
		return err
	})

	return value, err
}

// Delete removes ref from both backends. A backend that does not hold the
// secret counts as success.
func (s *Store) Delete(ctx context.Context, ref string) error {
	primaryErr := ignoreNotFound(s.primary.Delete(ctx, ref))
	if isCanceled(primaryErr) {
		return primaryErr
	}
	if primaryErr != nil {
		s.logFallback("delete", ref, primaryErr)
	}

	fallbackErr := ignoreNotFound(s.fallback.Delete(ctx, ref))
	switch {
	case fallbackErr == nil:
		return nil
	case primaryErr == nil:
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", primaryErr, fallbackErr)
	}
}

func (s *Store) withFallback(op string, ref string, call func(ports.SecretStore) error) error {
	err := call(s.primary)
	if err == nil || isCanceled(err) {
		return err
	}
	s.logFallback(op, ref, err)

	fallbackErr := call(s.fallback)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend %s failed: %w; fallback backend %s failed: %w", op, err, op, fallbackErr)
}

func (s *Store) logFallback(op string, ref string, err error) {
	s.logger.V(1).Info("primary secret backend failed, using fallback", "op", op, "ref", ref, "reason", err.Error())
}

func ignoreNotFound(err error) error {
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil
	}
	return err
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
