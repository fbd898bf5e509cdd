package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/spinwheel/gatekeeper/config"
	"github.com/spinwheel/gatekeeper/internal/adapters/devidentity"
	"github.com/spinwheel/gatekeeper/internal/adapters/fingerprint"
	"github.com/spinwheel/gatekeeper/internal/adapters/gatewayapi"
	"github.com/spinwheel/gatekeeper/internal/adapters/telegram"
	"github.com/spinwheel/gatekeeper/internal/devgateway"
	domainauth "github.com/spinwheel/gatekeeper/internal/domain/auth"
	"github.com/spinwheel/gatekeeper/internal/ports"
	"github.com/spinwheel/gatekeeper/internal/service"
)

// SessionConfig contains configuration for the session orchestrator.
type SessionConfig struct {
	App          config.AppConfig
	Logger       *slog.Logger
	OnTransition func(domainauth.Snapshot)
}

// BuildOrchestrator wires the identity source, fingerprint source, and
// gateway clients into a session orchestrator.
func BuildOrchestrator(cfg SessionConfig) (*service.Orchestrator, error) {
	identity, err := buildIdentitySource(cfg.App, cfg.Logger)
	if err != nil {
		return nil, err
	}

	client, err := gatewayapi.NewClient(gatewayapi.Config{
		BaseURL: cfg.App.Gateway.BaseURL,
		Timeout: cfg.App.Gateway.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway client: %w", err)
	}

	return service.NewOrchestrator(service.OrchestratorOptions{
		Sources: service.SourceSet{
			Identity:    identity,
			Fingerprint: fingerprint.NewSource(fingerprint.Config{Path: cfg.App.Fingerprint.Path}),
		},
		Gateways: service.GatewaySet{
			Verification: client,
			Login:        client,
		},
		Config: service.OrchestratorConfig{
			ReverifyCooldown: cfg.App.Session.ReverifyCooldown,
			OnTransition:     cfg.OnTransition,
			Logger:           cfg.Logger,
		},
	}), nil
}

// buildIdentitySource selects the identity source for the run. Init
// data always wins; the dev identity is only a fallback inside dev
// mode. Outside dev mode an absent identity stays absent, and the
// session fails closed when it runs.
func buildIdentitySource(cfg config.AppConfig, logger *slog.Logger) (ports.IdentitySource, error) {
	if cfg.Identity.InitData != "" {
		return telegram.NewSource(cfg.Identity.InitData), nil
	}

	if cfg.IsDev {
		if logger != nil {
			logger.Warn("no init data present, using dev identity",
				"telegram_id", cfg.Identity.Dev.TelegramID)
		}
		provider, err := devidentity.NewProvider(devidentity.Config{
			TelegramID: cfg.Identity.Dev.TelegramID,
			FirstName:  cfg.Identity.Dev.FirstName,
			LastName:   cfg.Identity.Dev.LastName,
			Username:   cfg.Identity.Dev.Username,
		})
		if err != nil {
			return nil, fmt.Errorf("create dev identity provider: %w", err)
		}
		return provider, nil
	}

	return telegram.NewSource(""), nil
}

// AdminClientConfig contains configuration for the admin service.
type AdminClientConfig struct {
	App     config.AppConfig
	Confirm ports.ConfirmPrompt
	Logger  *slog.Logger
}

// BuildAdminService wires the admin HTTP client into the admin service.
func BuildAdminService(cfg AdminClientConfig) (*service.AdminService, error) {
	client, err := gatewayapi.NewAdminClient(gatewayapi.AdminConfig{
		BaseURL: cfg.App.Gateway.BaseURL,
		AdminID: cfg.App.Admin.AdminID,
		Timeout: cfg.App.Gateway.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin client: %w", err)
	}

	return service.NewAdminService(service.AdminServiceOptions{
		Gateway: client,
		Confirm: cfg.Confirm,
		Config: service.AdminServiceConfig{
			CacheTTL: cfg.App.Admin.CacheTTL,
			Logger:   cfg.Logger,
		},
	}), nil
}

// DevGatewayConfig contains configuration for the dev gateway server.
type DevGatewayConfig struct {
	App    config.AppConfig
	Logger *slog.Logger
}

// BuildDevGatewayServer creates the dev gateway server. When a Redis
// address is configured, device bindings are stored in Redis so they
// survive restarts; everything else is in-memory.
func BuildDevGatewayServer(cfg DevGatewayConfig) *devgateway.Server {
	var bindings devgateway.BindingStore = devgateway.NewMemoryBindingStore()
	if cfg.App.DevGateway.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.App.DevGateway.RedisAddr,
			DB:   cfg.App.DevGateway.RedisDB,
		})
		bindings = devgateway.NewRedisBindingStore(client)
		if cfg.Logger != nil {
			cfg.Logger.Info("dev gateway using redis bindings",
				"addr", cfg.App.DevGateway.RedisAddr,
				"db", cfg.App.DevGateway.RedisDB)
		}
	}

	return devgateway.NewServer(devgateway.ServerOptions{
		Store:    devgateway.NewMemoryStore(),
		Bindings: bindings,
		AdminID:  cfg.App.Admin.AdminID,
		Logger:   cfg.Logger,
	})
}
