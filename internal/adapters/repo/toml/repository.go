package toml

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bnema/pfconn/internal/domain"
	"github.com/bnema/pfconn/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName            = "config"
	configType            = "toml"
	envPrefix             = "PFCONN"
	ConnectionsPathKey    = "connections.path"
	connectionsFileMode   = 0o600
	connectionsDirMode    = 0o700
	ConfigDir             = ".pfconn"
	connectionsConfigFile = "connections.toml"
	tempFilePattern       = ".connections-*.toml.tmp"
)

type Repository struct {
	connectionsPath string
	mu              *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ConnectionRepository = (*Repository)(nil)

// NewRepository reads ~/.pfconn/config.toml into cfg (a missing file is fine)
// and resolves the connections file from the connections.path key.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, ConfigDir, connectionsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, ConfigDir))
	cfg.SetDefault(ConnectionsPathKey, defaultPath)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	connectionsPath := cfg.GetString(ConnectionsPathKey)
	if connectionsPath == "" {
		return nil, errors.New("connections path is empty")
	}
	connectionsPath, err = normalizeConnectionsPath(connectionsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{connectionsPath: connectionsPath, mu: lockForPath(connectionsPath)}, nil
}

func (r *Repository) Path() string {
	return r.connectionsPath
}

func (r *Repository) Save(ctx context.Context, record domain.ConnectionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(record)
	updated := false
	for i := range file.Connections {
		if file.Connections[i].Name == encoded.Name {
			file.Connections[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Connections = append(file.Connections, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Get(ctx context.Context, name string) (domain.ConnectionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.ConnectionRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.ConnectionRecord{}, err
	}

	for _, entry := range file.Connections {
		if entry.Name == name {
			return fromSchema(entry), nil
		}
	}

	return domain.ConnectionRecord{}, fmt.Errorf("%w: %s", domain.ErrConnectionNotFound, name)
}

func (r *Repository) List(ctx context.Context) ([]domain.ConnectionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.ConnectionRecord, 0, len(file.Connections))
	for _, entry := range file.Connections {
		records = append(records, fromSchema(entry))
	}
	slices.SortFunc(records, func(a, b domain.ConnectionRecord) int {
		return strings.Compare(a.Name, b.Name)
	})

	return records, nil
}

func (r *Repository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	index := slices.IndexFunc(file.Connections, func(entry connectionSchema) bool {
		return entry.Name == name
	})
	if index < 0 {
		return fmt.Errorf("%w: %s", domain.ErrConnectionNotFound, name)
	}
	file.Connections = slices.Delete(file.Connections, index, index+1)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.connectionsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read connections file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode connections file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeConnectionsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve connections path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.connectionsPath), connectionsDirMode); err != nil {
		return fmt.Errorf("create connections directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode connections file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.connectionsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp connections file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp connections file: %w", err)
	}

	if err := tempFile.Chmod(connectionsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp connections file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp connections file: %w", err)
	}

	if err := os.Rename(tempName, r.connectionsPath); err != nil {
		return fmt.Errorf("replace connections file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.connectionsPath, connectionsFileMode); err != nil {
		return fmt.Errorf("chmod connections file: %w", err)
	}

	return nil
}

func toSchema(record domain.ConnectionRecord) connectionSchema {
	return connectionSchema{
		Name:       record.Name,
		Type:       string(record.Type),
		CreatedAt:  formatTime(record.CreatedAt),
		UpdatedAt:  formatTime(record.UpdatedAt),
		Configs:    nonEmpty(record.Configs),
		SecretRefs: nonEmpty(record.SecretRefs),
	}
}

func fromSchema(entry connectionSchema) domain.ConnectionRecord {
	return domain.ConnectionRecord{
		Name:       entry.Name,
		Type:       domain.ConnectionType(entry.Type),
		Configs:    maps.Clone(entry.Configs),
		SecretRefs: maps.Clone(entry.SecretRefs),
		CreatedAt:  parseTime(entry.CreatedAt),
		UpdatedAt:  parseTime(entry.UpdatedAt),
	}
}

func nonEmpty(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}

	return maps.Clone(values)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
