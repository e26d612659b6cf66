package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/pfconn/internal/adapters/env"
	"github.com/bnema/pfconn/internal/adapters/logging"
	connrender "github.com/bnema/pfconn/internal/adapters/render/connections"
	tomlrepo "github.com/bnema/pfconn/internal/adapters/repo/toml"
	chainstore "github.com/bnema/pfconn/internal/adapters/secrets/chain"
	filestore "github.com/bnema/pfconn/internal/adapters/secrets/file"
	passstore "github.com/bnema/pfconn/internal/adapters/secrets/pass"
	azureverify "github.com/bnema/pfconn/internal/adapters/verify/azure"
	"github.com/bnema/pfconn/internal/application"
	"github.com/bnema/pfconn/internal/domain"
	"github.com/bnema/pfconn/internal/ports"
	"github.com/go-logr/logr"
	"github.com/spf13/viper"
)

const (
	secretsBackendKey = "secrets.backend"
	secretsDirKey     = "secrets.dir"
	verifyAllowHTTP   = "verify.allow_http"

	secretsBackendChain = "chain"
	secretsBackendPass  = "pass"
	secretsBackendFile  = "file"
)

type app struct {
	service      *application.Service
	provisioner  *application.Provisioner
	env          ports.Environment
	logger       logr.Logger
	listRenderer func([]domain.Connection, connrender.RenderOptions) (string, error)
	now          func() time.Time
}

func wireApp(opts *rootOptions, logOutput io.Writer) (*app, error) {
	logger := logging.New(logOutput, opts.verbosity)

	cfg := viper.New()
	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire connection repository: %w", err)
	}
	logger.V(1).Info("using connection store", "path", repo.Path())

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(secretsBackendKey, secretsBackendChain)
	cfg.SetDefault(secretsDirKey, filepath.Join(homeDir, tomlrepo.ConfigDir, "secrets"))

	secretStore, err := newSecretStore(cfg.GetString(secretsBackendKey), cfg.GetString(secretsDirKey), logger)
	if err != nil {
		return nil, err
	}

	environment, err := env.Load(opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	verifier := azureverify.NewVerifier(azureverify.Options{AllowHTTP: cfg.GetBool(verifyAllowHTTP)}, logger)
	service := application.NewService(repo, secretStore, ports.SystemClock{},
		application.WithLogger(logger.WithName("store")),
		application.WithVerifier(verifier),
	)

	return &app{
		service:      service,
		provisioner:  application.NewProvisioner(service, environment, logger.WithName("provision")),
		env:          environment,
		logger:       logger,
		listRenderer: connrender.Render,
		now:          time.Now,
	}, nil
}

func newSecretStore(backend string, dir string, logger logr.Logger) (ports.SecretStore, error) {
	switch backend {
	case secretsBackendChain:
		store, err := chainstore.NewPassFirstWithFileFallback(dir, logger)
		if err != nil {
			return nil, fmt.Errorf("wire secret store chain: %w", err)
		}
		return store, nil
	case secretsBackendPass:
		return passstore.NewStore(), nil
	case secretsBackendFile:
		return filestore.NewStore(dir), nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q (want %s, %s or %s)", backend, secretsBackendChain, secretsBackendPass, secretsBackendFile)
	}
}
