package connections

import (
	"fmt"
	"time"

	"github.com/bnema/pfconn/internal/domain"
	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a connection in show output and
// provisioning acknowledgements.
type Document struct {
	Name      string            `yaml:"name" json:"name"`
	Type      string            `yaml:"type" json:"type"`
	Configs   map[string]string `yaml:"configs,omitempty" json:"configs,omitempty"`
	Secrets   map[string]string `yaml:"secrets,omitempty" json:"secrets,omitempty"`
	CreatedAt string            `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt string            `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// NewDocument returns the connection with every secret value scrubbed.
func NewDocument(conn domain.Connection) Document {
	scrubbed := conn.Scrubbed()
	return Document{
		Name:      scrubbed.Name,
		Type:      string(scrubbed.Type),
		Configs:   scrubbed.Configs,
		Secrets:   scrubbed.Secrets,
		CreatedAt: formatTime(scrubbed.CreatedAt),
		UpdatedAt: formatTime(scrubbed.UpdatedAt),
	}
}

func RenderYAML(conn domain.Connection) (string, error) {
	out, err := yaml.Marshal(NewDocument(conn))
	if err != nil {
		return "", fmt.Errorf("encode connection %s: %w", conn.Name, err)
	}

	return string(out), nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
