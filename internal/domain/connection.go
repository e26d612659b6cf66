package domain

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"time"
)

type ConnectionType string

const (
	ConnectionTypeAzureOpenAI     ConnectionType = "azure_open_ai"
	ConnectionTypeCustom          ConnectionType = "custom"
	ConnectionTypeCognitiveSearch ConnectionType = "cognitive_search"
)

func (t ConnectionType) Valid() bool {
	switch t {
	case ConnectionTypeAzureOpenAI, ConnectionTypeCustom, ConnectionTypeCognitiveSearch:
		return true
	default:
		return false
	}
}

// Well-known config and secret keys of the typed connections.
const (
	ConfigAPIBase    = "api_base"
	ConfigAPIType    = "api_type"
	ConfigAPIVersion = "api_version"
	SecretAPIKey     = "api_key"
)

// ScrubbedSecret replaces secret values whenever a connection leaves the store.
const ScrubbedSecret = "******"

var connectionNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Connection is a named bundle of endpoint configuration and credentials.
// Non-secret material lives in Configs, secret material in Secrets.
type Connection struct {
	Name      string
	Type      ConnectionType
	Configs   map[string]string
	Secrets   map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewAzureOpenAIConnection(name, apiKey, apiBase, apiType, apiVersion string) Connection {
	return Connection{
		Name: name,
		Type: ConnectionTypeAzureOpenAI,
		Configs: map[string]string{
			ConfigAPIBase:    apiBase,
			ConfigAPIType:    apiType,
			ConfigAPIVersion: apiVersion,
		},
		Secrets: map[string]string{
			SecretAPIKey: apiKey,
		},
	}
}

func NewCustomConnection(name string, configs, secrets map[string]string) Connection {
	return Connection{
		Name:    name,
		Type:    ConnectionTypeCustom,
		Configs: maps.Clone(configs),
		Secrets: maps.Clone(secrets),
	}
}

func NewCognitiveSearchConnection(name, apiKey, apiBase, apiVersion string) Connection {
	return Connection{
		Name: name,
		Type: ConnectionTypeCognitiveSearch,
		Configs: map[string]string{
			ConfigAPIBase:    apiBase,
			ConfigAPIVersion: apiVersion,
		},
		Secrets: map[string]string{
			SecretAPIKey: apiKey,
		},
	}
}

func (c Connection) APIKey() string     { return c.Secrets[SecretAPIKey] }
func (c Connection) APIBase() string    { return c.Configs[ConfigAPIBase] }
func (c Connection) APIType() string    { return c.Configs[ConfigAPIType] }
func (c Connection) APIVersion() string { return c.Configs[ConfigAPIVersion] }

func (c Connection) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidConnection)
	}
	if !validIdentifier(c.Name) {
		return fmt.Errorf("%w: name %q may only contain letters, digits, '_', '.' and '-'", ErrInvalidConnection, c.Name)
	}
	for _, key := range slices.Sorted(maps.Keys(c.Secrets)) {
		if !validIdentifier(key) {
			return fmt.Errorf("%w: secret key %q of %s may only contain letters, digits, '_', '.' and '-'", ErrInvalidConnection, key, c.Name)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(c.Configs)) {
		if !validIdentifier(key) {
			return fmt.Errorf("%w: config key %q of %s may only contain letters, digits, '_', '.' and '-'", ErrInvalidConnection, key, c.Name)
		}
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unsupported connection type %q", ErrInvalidConnection, c.Type)
	}

	switch c.Type {
	case ConnectionTypeAzureOpenAI, ConnectionTypeCognitiveSearch:
		if c.APIBase() == "" {
			return fmt.Errorf("%w: %s requires %s", ErrInvalidConnection, c.Name, ConfigAPIBase)
		}
		if c.APIKey() == "" {
			return fmt.Errorf("%w: %s requires %s", ErrInvalidConnection, c.Name, SecretAPIKey)
		}
	}

	return nil
}

// validIdentifier reports whether s can be used as one segment of a secret
// path.
func validIdentifier(s string) bool {
	return s != "." && s != ".." && connectionNamePattern.MatchString(s)
}

// Scrubbed returns a copy whose secret values are masked.
func (c Connection) Scrubbed() Connection {
	scrubbed := c
	scrubbed.Configs = maps.Clone(c.Configs)
	if len(c.Secrets) > 0 {
		scrubbed.Secrets = make(map[string]string, len(c.Secrets))
		for key := range c.Secrets {
			scrubbed.Secrets[key] = ScrubbedSecret
		}
	}

	return scrubbed
}

// ConnectionRecord is the persisted shape of a Connection: secret values are
// replaced by references into a secret store.
type ConnectionRecord struct {
	Name       string
	Type       ConnectionType
	Configs    map[string]string
	SecretRefs map[string]string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
