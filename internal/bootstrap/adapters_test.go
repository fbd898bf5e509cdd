package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinwheel/gatekeeper/config"
	"github.com/spinwheel/gatekeeper/internal/adapters/devidentity"
	"github.com/spinwheel/gatekeeper/internal/adapters/telegram"
	apperrors "github.com/spinwheel/gatekeeper/internal/errors"
	"github.com/spinwheel/gatekeeper/internal/mocks/session"
)

func baseConfig() config.AppConfig {
	cfg := config.AppConfig{Services: "session"}
	cfg.Sanitize()
	return cfg
}

func TestBuildIdentitySource_InitDataWins(t *testing.T) {
	cfg := baseConfig()
	cfg.IsDev = true
	cfg.Identity.InitData = "user=%7B%22id%22%3A42%2C%22first_name%22%3A%22Ada%22%7D"

	source, err := buildIdentitySource(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &telegram.Source{}, source)

	claim, err := source.Claim(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), claim.TelegramID)
}

func TestBuildIdentitySource_DevFallback(t *testing.T) {
	cfg := baseConfig()
	cfg.IsDev = true
	cfg.Identity.Dev = config.DevIdentityConfig{TelegramID: 7, FirstName: "Dev"}

	source, err := buildIdentitySource(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &devidentity.Provider{}, source)

	claim, err := source.Claim(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), claim.TelegramID)
}

func TestBuildIdentitySource_ProdWithoutInitDataFailsClosed(t *testing.T) {
	cfg := baseConfig()

	source, err := buildIdentitySource(cfg, nil)
	require.NoError(t, err)

	_, err = source.Claim(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsIdentityUnavailable(err))
}

func TestBuildOrchestrator(t *testing.T) {
	cfg := baseConfig()
	cfg.IsDev = true
	cfg.Identity.Dev = config.DevIdentityConfig{TelegramID: 7, FirstName: "Dev"}

	orch, err := BuildOrchestrator(SessionConfig{App: cfg})
	require.NoError(t, err)
	assert.NotNil(t, orch)
}

func TestBuildAdminService_RequiresAdminID(t *testing.T) {
	cfg := baseConfig()

	_, err := BuildAdminService(AdminClientConfig{App: cfg, Confirm: &session.ConfirmPrompt{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin")
}

func TestBuildAdminService(t *testing.T) {
	cfg := baseConfig()
	cfg.Admin.AdminID = "admin-42"

	svc, err := BuildAdminService(AdminClientConfig{App: cfg, Confirm: &session.ConfirmPrompt{}})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestBuildDevGatewayServer(t *testing.T) {
	cfg := baseConfig()
	cfg.Admin.AdminID = "admin-42"

	srv := BuildDevGatewayServer(DevGatewayConfig{App: cfg})
	assert.NotNil(t, srv)
}

func TestGetEnabledServices(t *testing.T) {
	cfg := baseConfig()
	cfg.Services = "session,devgateway"

	names := GetEnabledServices(&cfg)
	assert.ElementsMatch(t, []string{"session", "devgateway"}, names)

	cfg.Services = "bogus"
	assert.Empty(t, GetEnabledServices(&cfg))

	assert.Empty(t, GetEnabledServices(nil))
}

func TestValidateServiceConfig(t *testing.T) {
	cfg := baseConfig()
	require.NoError(t, ValidateServiceConfig(&cfg))

	cfg.Services = "bogus"
	require.Error(t, ValidateServiceConfig(&cfg))

	require.Error(t, ValidateServiceConfig(nil))
}
