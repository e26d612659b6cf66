package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/bnema/pfconn/internal/domain"
	"github.com/bnema/pfconn/internal/ports"
	"github.com/go-logr/logr"
)

const (
	moduleName    = "pfconn/verify"
	moduleVersion = "v1"

	apiKeyHeader = "api-key"
)

var ErrVerifyUnsupported = errors.New("connection cannot be verified")

type Options struct {
	// Transport replaces the default HTTP client.
	Transport policy.Transporter
	// AllowHTTP permits credentials over plain HTTP endpoints.
	AllowHTTP bool
	Now       func() time.Time
}

// Verifier issues one read-only request against the service behind a
// connection and reports whether it accepted the credentials.
type Verifier struct {
	opts   Options
	logger logr.Logger
}

var _ ports.ConnectionVerifier = (*Verifier)(nil)

func NewVerifier(opts Options, logger logr.Logger) *Verifier {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Verifier{opts: opts, logger: logger.WithName("verify")}
}

func (v *Verifier) Verify(ctx context.Context, conn domain.Connection) error {
	switch conn.Type {
	case domain.ConnectionTypeAzureOpenAI:
		return v.probeWithAPIKey(ctx, conn, "/openai/models", nil)
	case domain.ConnectionTypeCognitiveSearch:
		return v.probeWithAPIKey(ctx, conn, "/indexes", url.Values{"$select": {"name"}})
	case domain.ConnectionTypeCustom:
		target, ok := cosmosTargetFrom(conn)
		if !ok {
			return fmt.Errorf("%w: custom connection %s has no known probe", ErrVerifyUnsupported, conn.Name)
		}
		return v.probeCosmos(ctx, target)
	default:
		return fmt.Errorf("%w: connection type %q", ErrVerifyUnsupported, conn.Type)
	}
}

func (v *Verifier) probeWithAPIKey(ctx context.Context, conn domain.Connection, path string, query url.Values) error {
	if query == nil {
		query = url.Values{}
	}
	if version := conn.APIVersion(); version != "" {
		query.Set("api-version", version)
	}

	credential := runtime.NewKeyCredentialPolicy(azcore.NewKeyCredential(conn.APIKey()), apiKeyHeader, &runtime.KeyCredentialPolicyOptions{
		InsecureAllowCredentialWithHTTP: v.opts.AllowHTTP,
	})

	return v.get(ctx, conn.APIBase(), path, query, credential)
}

func (v *Verifier) get(ctx context.Context, base string, path string, query url.Values, credential policy.Policy) error {
	endpoint := strings.TrimRight(base, "/") + path
	pl := runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{
		PerRetry: []policy.Policy{credential},
	}, v.clientOptions())

	req, err := runtime.NewRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	req.Raw().URL.RawQuery = query.Encode()

	v.logger.V(1).Info("probing connection endpoint", "url", req.Raw().URL.String())

	resp, err := pl.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", endpoint, err)
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return runtime.NewResponseError(resp)
	}

	return runtime.Drain(resp)
}

func (v *Verifier) clientOptions() *policy.ClientOptions {
	return &policy.ClientOptions{
		Transport: v.opts.Transport,
		Retry:     policy.RetryOptions{MaxRetries: -1},
		Telemetry: policy.TelemetryOptions{Disabled: true},
	}
}
