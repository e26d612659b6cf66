package application

import (
	"context"
	"fmt"

	"github.com/bnema/pfconn/internal/domain"
	"github.com/bnema/pfconn/internal/ports"
	"github.com/go-logr/logr"
)

const (
	EnvAIServicesKey      = "CONTOSO_AI_SERVICES_KEY"
	EnvAIServicesEndpoint = "CONTOSO_AI_SERVICES_ENDPOINT"
	EnvCosmosEndpoint     = "COSMOS_ENDPOINT"
	EnvCosmosKey          = "COSMOS_KEY"
	EnvSearchEndpoint     = "CONTOSO_SEARCH_ENDPOINT"
	EnvSearchKey          = "CONTOSO_SEARCH_KEY"
)

const (
	AzureOpenAIConnectionName = "aoai-connection"
	CosmosConnectionName      = "contoso-cosmos"
	SearchConnectionName      = "contoso-search"

	azureAPIType      = "azure"
	previewAPIVersion = "2023-07-01-preview"
	cosmosDatabaseID  = "contoso-outdoor"
	cosmosContainerID = "customers"
)

// ConnectionUpserter is the store operation the provisioner submits to.
type ConnectionUpserter interface {
	CreateOrUpdate(ctx context.Context, conn domain.Connection) (domain.Connection, error)
}

// ProvisionStep builds one connection from its required variables.
type ProvisionStep struct {
	Name     string
	Required []string
	Build    func(values map[string]string) domain.Connection
}

// DefaultProvisionSteps returns the Contoso connections in submission order.
func DefaultProvisionSteps() []ProvisionStep {
	return []ProvisionStep{
		{
			Name:     AzureOpenAIConnectionName,
			Required: []string{EnvAIServicesKey, EnvAIServicesEndpoint},
			Build: func(values map[string]string) domain.Connection {
				return domain.NewAzureOpenAIConnection(
					AzureOpenAIConnectionName,
					values[EnvAIServicesKey],
					values[EnvAIServicesEndpoint],
					azureAPIType,
					previewAPIVersion,
				)
			},
		},
		{
			Name:     CosmosConnectionName,
			Required: []string{EnvCosmosEndpoint, EnvCosmosKey},
			Build: func(values map[string]string) domain.Connection {
				return domain.NewCustomConnection(
					CosmosConnectionName,
					map[string]string{
						"endpoint":    values[EnvCosmosEndpoint],
						"databaseId":  cosmosDatabaseID,
						"containerId": cosmosContainerID,
					},
					map[string]string{
						"key": values[EnvCosmosKey],
					},
				)
			},
		},
		{
			Name:     SearchConnectionName,
			Required: []string{EnvSearchEndpoint, EnvSearchKey},
			Build: func(values map[string]string) domain.Connection {
				return domain.NewCognitiveSearchConnection(
					SearchConnectionName,
					values[EnvSearchKey],
					values[EnvSearchEndpoint],
					previewAPIVersion,
				)
			},
		},
	}
}

// resolve reads the step's variables. Absent and empty values are both
// reported as missing.
func (s ProvisionStep) resolve(env ports.Environment) (domain.Connection, error) {
	values := make(map[string]string, len(s.Required))
	var missing []string
	for _, key := range s.Required {
		value, ok := env.Lookup(key)
		if !ok || value == "" {
			missing = append(missing, key)
			continue
		}
		values[key] = value
	}

	if len(missing) > 0 {
		return domain.Connection{}, &domain.MissingConfigurationError{Keys: missing}
	}

	return s.Build(values), nil
}

type ProvisionEventKind string

const (
	ProvisionStarted   ProvisionEventKind = "started"
	ProvisionCompleted ProvisionEventKind = "completed"
)

// ProvisionEvent reports step progress. Connection carries the store
// acknowledgement on completed events.
type ProvisionEvent struct {
	Kind       ProvisionEventKind
	Step       string
	Connection domain.Connection
	DryRun     bool
}

type ProvisionOptions struct {
	DryRun  bool
	OnEvent func(ProvisionEvent)
}

type Provisioner struct {
	connections ConnectionUpserter
	env         ports.Environment
	steps       []ProvisionStep
	logger      logr.Logger
}

func NewProvisioner(connections ConnectionUpserter, env ports.Environment, logger logr.Logger) *Provisioner {
	return &Provisioner{
		connections: connections,
		env:         env,
		steps:       DefaultProvisionSteps(),
		logger:      logger,
	}
}

// Provision runs every step in order and stops at the first failure.
// Connections submitted before the failure stay in the store.
func (p *Provisioner) Provision(ctx context.Context, opts ProvisionOptions) ([]domain.Connection, error) {
	emit := opts.OnEvent
	if emit == nil {
		emit = func(ProvisionEvent) {}
	}

	results := make([]domain.Connection, 0, len(p.steps))
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		log := p.logger.WithValues("connection", step.Name)

		conn, err := step.resolve(p.env)
		if err != nil {
			return results, fmt.Errorf("provision %s: %w", step.Name, err)
		}

		emit(ProvisionEvent{Kind: ProvisionStarted, Step: step.Name, DryRun: opts.DryRun})

		var ack domain.Connection
		if opts.DryRun {
			if err := conn.Validate(); err != nil {
				return results, fmt.Errorf("provision %s: %w", step.Name, err)
			}
			ack = conn.Scrubbed()
		} else {
			log.V(1).Info("submitting connection", "type", conn.Type)
			ack, err = p.connections.CreateOrUpdate(ctx, conn)
			if err != nil {
				return results, fmt.Errorf("provision %s: %w", step.Name, err)
			}
		}

		results = append(results, ack)
		emit(ProvisionEvent{Kind: ProvisionCompleted, Step: step.Name, Connection: ack, DryRun: opts.DryRun})
	}

	return results, nil
}
