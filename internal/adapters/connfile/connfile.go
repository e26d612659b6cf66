package connfile

import (
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"

	"github.com/bnema/pfconn/internal/domain"
	"github.com/bnema/pfconn/internal/ports"
	"gopkg.in/yaml.v3"
)

var envReference = regexp.MustCompile(`\$\{env:([A-Za-z_][A-Za-z0-9_]*)\}`)

type document struct {
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type"`
	APIKey     string            `yaml:"api_key,omitempty"`
	APIBase    string            `yaml:"api_base,omitempty"`
	APIType    string            `yaml:"api_type,omitempty"`
	APIVersion string            `yaml:"api_version,omitempty"`
	Configs    map[string]string `yaml:"configs,omitempty"`
	Secrets    map[string]string `yaml:"secrets,omitempty"`
}

// Load reads a connection file and resolves its ${env:VAR} references.
func Load(path string, env ports.Environment) (domain.Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Connection{}, fmt.Errorf("read connection file: %w", err)
	}

	conn, err := Parse(data, env)
	if err != nil {
		return domain.Connection{}, fmt.Errorf("connection file %s: %w", path, err)
	}

	return conn, nil
}

func Parse(data []byte, env ports.Environment) (domain.Connection, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Connection{}, fmt.Errorf("decode connection file: %w", err)
	}

	r := &resolver{env: env, missing: map[string]struct{}{}}
	configs := r.resolveMap(doc.Configs)
	secrets := r.resolveMap(doc.Secrets)
	if apiBase := r.resolve(doc.APIBase); apiBase != "" {
		configs[domain.ConfigAPIBase] = apiBase
	}
	if apiType := r.resolve(doc.APIType); apiType != "" {
		configs[domain.ConfigAPIType] = apiType
	}
	if apiVersion := r.resolve(doc.APIVersion); apiVersion != "" {
		configs[domain.ConfigAPIVersion] = apiVersion
	}
	if apiKey := r.resolve(doc.APIKey); apiKey != "" {
		secrets[domain.SecretAPIKey] = apiKey
	}

	if len(r.missing) > 0 {
		return domain.Connection{}, &domain.MissingConfigurationError{Keys: slices.Sorted(maps.Keys(r.missing))}
	}

	conn := domain.Connection{
		Name: doc.Name,
		Type: domain.ConnectionType(doc.Type),
	}
	if len(configs) > 0 {
		conn.Configs = configs
	}
	if len(secrets) > 0 {
		conn.Secrets = secrets
	}

	if err := conn.Validate(); err != nil {
		return domain.Connection{}, err
	}

	return conn, nil
}

type resolver struct {
	env     ports.Environment
	missing map[string]struct{}
}

func (r *resolver) resolveMap(values map[string]string) map[string]string {
	resolved := make(map[string]string, len(values))
	for key, value := range values {
		resolved[key] = r.resolve(value)
	}
	return resolved
}

// resolve expands ${env:VAR} references. Unset and empty variables are
// recorded as missing.
func (r *resolver) resolve(value string) string {
	return envReference.ReplaceAllStringFunc(value, func(match string) string {
		key := envReference.FindStringSubmatch(match)[1]
		resolved, ok := r.env.Lookup(key)
		if !ok || resolved == "" {
			r.missing[key] = struct{}{}
			return ""
		}
		return resolved
	})
}
