package application

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bnema/pfconn/internal/domain"
	"github.com/bnema/pfconn/internal/ports"
	"github.com/go-logr/logr"
)

var ErrVerifierUnavailable = errors.New("connection verifier is not configured")

// Service is the local connection store: records live in the repository,
// secret values in the secret store.
type Service struct {
	repo     ports.ConnectionRepository
	store    ports.SecretStore
	clock    ports.Clock
	verifier ports.ConnectionVerifier
	logger   logr.Logger
}

type ServiceOption func(*Service)

func WithLogger(logger logr.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithVerifier(verifier ports.ConnectionVerifier) ServiceOption {
	return func(s *Service) {
		s.verifier = verifier
	}
}

func NewService(repo ports.ConnectionRepository, store ports.SecretStore, clock ports.Clock, opts ...ServiceOption) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &Service{
		repo:   repo,
		store:  store,
		clock:  clock,
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type writtenSecret struct {
	ref         string
	previous    string
	hadPrevious bool
}

// CreateOrUpdate upserts the connection by name and returns the stored
// connection with scrubbed secrets. Secrets passed as domain.ScrubbedSecret
// keep their stored value.
func (s *Service) CreateOrUpdate(ctx context.Context, conn domain.Connection) (domain.Connection, error) {
	if err := conn.Validate(); err != nil {
		return domain.Connection{}, err
	}

	existing, err := s.repo.Get(ctx, conn.Name)
	found := err == nil
	if err != nil {
		if !errors.Is(err, domain.ErrConnectionNotFound) {
			return domain.Connection{}, fmt.Errorf("get connection %s: %w", conn.Name, err)
		}
		existing = domain.ConnectionRecord{}
	}

	now := s.clock.Now()
	record := domain.ConnectionRecord{
		Name:       conn.Name,
		Type:       conn.Type,
		Configs:    maps.Clone(conn.Configs),
		SecretRefs: make(map[string]string, len(conn.Secrets)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if found && !existing.CreatedAt.IsZero() {
		record.CreatedAt = existing.CreatedAt
	}

	log := s.logger.WithValues("connection", conn.Name)
	log.V(1).Info("upserting connection", "type", conn.Type, "exists", found)

	written := make([]writtenSecret, 0, len(conn.Secrets))
	for _, key := range slices.Sorted(maps.Keys(conn.Secrets)) {
		value := conn.Secrets[key]
		if value == domain.ScrubbedSecret {
			ref, ok := existing.SecretRefs[key]
			if !ok {
				err := fmt.Errorf("%w: secret %q of %s is scrubbed and has no stored value", domain.ErrInvalidConnection, key, conn.Name)
				return domain.Connection{}, s.withRollback(ctx, err, written)
			}
			record.SecretRefs[key] = ref
			continue
		}

		ref := domain.SecretRef(conn.Name, key)
		entry := writtenSecret{ref: ref}
		if existing.SecretRefs[key] == ref {
			previous, err := s.store.Get(ctx, ref)
			if err == nil {
				entry.previous = previous
				entry.hadPrevious = true
			} else {
				log.V(1).Info("previous secret unreadable, rollback will delete it", "ref", ref, "reason", err.Error())
			}
		}

		if err := s.store.Put(ctx, ref, value); err != nil {
			return domain.Connection{}, s.withRollback(ctx, fmt.Errorf("store secret %q of %s: %w", key, conn.Name, err), written)
		}
		written = append(written, entry)
		record.SecretRefs[key] = ref
		log.V(2).Info("stored secret", "ref", ref)
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return domain.Connection{}, s.withRollback(ctx, fmt.Errorf("save connection %s: %w", conn.Name, err), written)
	}

	kept := make(map[string]struct{}, len(record.SecretRefs))
	for _, ref := range record.SecretRefs {
		kept[ref] = struct{}{}
	}
	for _, ref := range existing.SecretRefs {
		if _, ok := kept[ref]; ok {
			continue
		}
		if err := s.deleteSecret(ctx, ref); err != nil {
			log.Error(err, "delete stale secret", "ref", ref)
		}
	}

	return connectionFromRecord(record, nil), nil
}

func (s *Service) withRollback(ctx context.Context, cause error, written []writtenSecret) error {
	var rollbackErr error
	for i := len(written) - 1; i >= 0; i-- {
		entry := written[i]
		if entry.hadPrevious {
			if err := s.store.Put(ctx, entry.ref, entry.previous); err != nil {
				rollbackErr = errors.Join(rollbackErr, fmt.Errorf("restore secret %q: %w", entry.ref, err))
			}
			continue
		}
		if err := s.deleteSecret(ctx, entry.ref); err != nil {
			rollbackErr = errors.Join(rollbackErr, fmt.Errorf("delete secret %q: %w", entry.ref, err))
		}
	}

	if rollbackErr != nil {
		return fmt.Errorf("%w; rollback stored secrets: %w", cause, rollbackErr)
	}

	return cause
}

// Get returns the named connection. Secrets are scrubbed unless withSecrets
// is set, in which case they are resolved from the secret store.
func (s *Service) Get(ctx context.Context, name string, withSecrets bool) (domain.Connection, error) {
	record, err := s.repo.Get(ctx, name)
	if err != nil {
		return domain.Connection{}, fmt.Errorf("get connection %s: %w", name, err)
	}

	if !withSecrets {
		return connectionFromRecord(record, nil), nil
	}

	secrets := make(map[string]string, len(record.SecretRefs))
	for key, ref := range record.SecretRefs {
		value, err := s.store.Get(ctx, ref)
		if err != nil {
			return domain.Connection{}, fmt.Errorf("resolve secret %q of %s: %w", key, name, err)
		}
		secrets[key] = value
	}

	return connectionFromRecord(record, secrets), nil
}

func (s *Service) List(ctx context.Context) ([]domain.Connection, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	connections := make([]domain.Connection, 0, len(records))
	for _, record := range records {
		connections = append(connections, connectionFromRecord(record, nil))
	}
	slices.SortFunc(connections, func(a, b domain.Connection) int {
		return strings.Compare(a.Name, b.Name)
	})

	return connections, nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	record, err := s.repo.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("get connection %s: %w", name, err)
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete connection %s: %w", name, err)
	}

	var secretErr error
	for _, key := range slices.Sorted(maps.Keys(record.SecretRefs)) {
		if err := s.deleteSecret(ctx, record.SecretRefs[key]); err != nil {
			secretErr = errors.Join(secretErr, fmt.Errorf("delete secret %q: %w", key, err))
		}
	}
	if secretErr != nil {
		return fmt.Errorf("delete secrets of %s: %w", name, secretErr)
	}

	s.logger.V(1).Info("deleted connection", "connection", name)
	return nil
}

// deleteSecret removes ref; a secret that is already gone is not an error.
func (s *Service) deleteSecret(ctx context.Context, ref string) error {
	if err := s.store.Delete(ctx, ref); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return err
	}
	return nil
}

// Verify resolves the connection's secrets and probes the service behind it.
func (s *Service) Verify(ctx context.Context, name string) error {
	if s.verifier == nil {
		return ErrVerifierUnavailable
	}

	conn, err := s.Get(ctx, name, true)
	if err != nil {
		return err
	}

	if err := s.verifier.Verify(ctx, conn); err != nil {
		return fmt.Errorf("verify connection %s: %w", name, err)
	}

	return nil
}

// connectionFromRecord rebuilds a Connection. A nil secrets map yields
// scrubbed values for every stored ref.
func connectionFromRecord(record domain.ConnectionRecord, secrets map[string]string) domain.Connection {
	conn := domain.Connection{
		Name:      record.Name,
		Type:      record.Type,
		Configs:   maps.Clone(record.Configs),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}

	if len(record.SecretRefs) == 0 {
		return conn
	}

	conn.Secrets = make(map[string]string, len(record.SecretRefs))
	for key := range record.SecretRefs {
		if secrets == nil {
			conn.Secrets[key] = domain.ScrubbedSecret
			continue
		}
		conn.Secrets[key] = secrets[key]
	}

	return conn
}
