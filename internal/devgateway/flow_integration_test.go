package devgateway

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinwheel/gatekeeper/internal/adapters/devidentity"
	"github.com/spinwheel/gatekeeper/internal/adapters/fingerprint"
	"github.com/spinwheel/gatekeeper/internal/adapters/gatewayapi"
	domainauth "github.com/spinwheel/gatekeeper/internal/domain/auth"
	"github.com/spinwheel/gatekeeper/internal/domain/model"
	"github.com/spinwheel/gatekeeper/internal/service"
)

// TestSessionFlowAgainstDevGateway runs the real session flow, with the
// real HTTP clients, against the dev gateway: pending on a missing
// channel, then authenticated after the user joins it.
func TestSessionFlowAgainstDevGateway(t *testing.T) {
	store := NewMemoryStore()
	server := NewServer(ServerOptions{
		Store:    store,
		Bindings: NewMemoryBindingStore(),
		AdminID:  "admin-42",
	})
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	ctx := context.Background()
	_, err := store.CreateChannel(ctx, model.Channel{
		ChannelID: -100555, Name: "Announcements", URL: "https://t.me/announce",
	})
	require.NoError(t, err)

	client, err := gatewayapi.NewClient(gatewayapi.Config{BaseURL: ts.URL})
	require.NoError(t, err)

	identity, err := devidentity.NewProvider(devidentity.Config{
		TelegramID: 42, FirstName: "Flow", Username: "flowtester",
	})
	require.NoError(t, err)

	orch := service.NewOrchestrator(service.OrchestratorOptions{
		Sources: service.SourceSet{
			Identity: identity,
			Fingerprint: fingerprint.NewSource(fingerprint.Config{
				Path: filepath.Join(t.TempDir(), "device_id"),
			}),
		},
		Gateways: service.GatewaySet{Verification: client, Login: client},
	})

	snap := orch.Run(ctx)
	require.Equal(t, domainauth.PhaseMembershipPending, snap.Phase)
	require.Len(t, snap.MissingGroups, 1)
	assert.Equal(t, "Announcements", snap.MissingGroups[0].DisplayName)

	require.NoError(t, store.JoinChannel(ctx, 42, -100555))

	snap = orch.Reverify(ctx)
	assert.Equal(t, domainauth.PhaseAuthenticated, snap.Phase)
	assert.Equal(t, domainauth.RoleUser, snap.Role)

	// The login registered the user with the gateway.
	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(42), users[0].TelegramID)
	assert.Equal(t, "Flow", users[0].FirstName)
}

// TestAdminClientAgainstDevGateway exercises the admin HTTP client
// against the dev gateway's admin surface.
func TestAdminClientAgainstDevGateway(t *testing.T) {
	server := NewServer(ServerOptions{
		Store:    NewMemoryStore(),
		Bindings: NewMemoryBindingStore(),
		AdminID:  "admin-42",
	})
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	admin, err := gatewayapi.NewAdminClient(gatewayapi.AdminConfig{
		BaseURL: ts.URL, AdminID: "admin-42",
	})
	require.NoError(t, err)
	ctx := context.Background()

	resolved, err := admin.ResolveChannel(ctx, "announce")
	require.NoError(t, err)
	assert.Negative(t, resolved.ID)

	created, err := admin.CreateChannel(ctx, model.Channel{
		ChannelID: resolved.ID, Name: resolved.Title, URL: "https://t.me/announce",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	channels, err := admin.ListChannels(ctx)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, resolved.ID, channels[0].ChannelID)

	origin, err := admin.CreateOrigin(ctx, "https://widgets.example.com")
	require.NoError(t, err)
	require.NoError(t, admin.DeleteOrigin(ctx, origin.ID))

	origins, err := admin.ListOrigins(ctx)
	require.NoError(t, err)
	assert.Empty(t, origins)

	// A client with the wrong admin id is rejected.
	stranger, err := gatewayapi.NewAdminClient(gatewayapi.AdminConfig{
		BaseURL: ts.URL, AdminID: "not-the-admin",
	})
	require.NoError(t, err)
	_, err = stranger.ListChannels(ctx)
	require.Error(t, err)
}
