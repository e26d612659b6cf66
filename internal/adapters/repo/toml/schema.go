package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int                `toml:"version"`
	Connections []connectionSchema `toml:"connections"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported connections schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type connectionSchema struct {
	Name       string            `toml:"name"`
	Type       string            `toml:"type"`
	CreatedAt  string            `toml:"created_at,omitempty"`
	UpdatedAt  string            `toml:"updated_at,omitempty"`
	Configs    map[string]string `toml:"configs,omitempty"`
	SecretRefs map[string]string `toml:"secret_refs,omitempty"`
}
