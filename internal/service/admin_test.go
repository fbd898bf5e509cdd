package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/spinwheel/gatekeeper/internal/domain/model"
	apperrors "github.com/spinwheel/gatekeeper/internal/errors"
	"github.com/spinwheel/gatekeeper/internal/mocks"
	sessionmocks "github.com/spinwheel/gatekeeper/internal/mocks/session"
)

func newTestAdminService(t *testing.T, confirm *sessionmocks.ConfirmPrompt) (*AdminService, *mocks.MockAdminGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockAdminGateway(ctrl)
	svc := NewAdminService(AdminServiceOptions{
		Gateway: gateway,
		Confirm: confirm,
		Config:  AdminServiceConfig{CacheTTL: time.Minute},
	})
	return svc, gateway
}

func TestNewAdminService_RequiresDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockAdminGateway(ctrl)

	assert.Panics(t, func() {
		NewAdminService(AdminServiceOptions{Confirm: &sessionmocks.ConfirmPrompt{}})
	})
	assert.Panics(t, func() {
		NewAdminService(AdminServiceOptions{Gateway: gateway})
	})
}

func TestAdminService_Users_CachesList(t *testing.T) {
	svc, gateway := newTestAdminService(t, &sessionmocks.ConfirmPrompt{})

	want := []model.User{{ID: 1, TelegramID: 42, FirstName: "Alice"}}
	gateway.EXPECT().ListUsers(gomock.Any()).Return(want, nil).Times(1)

	ctx := context.Background()
	first, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, first)

	// Second read is served from cache without a gateway call.
	second, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, second)
}

func TestAdminService_Users_GatewayError(t *testing.T) {
	svc, gateway := newTestAdminService(t, &sessionmocks.ConfirmPrompt{})

	gateway.EXPECT().ListUsers(gomock.Any()).Return(nil, errors.New("boom"))

	_, err := svc.Users(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list users")
}

func TestAdminService_UpdateUser_ReconcilesCache(t *testing.T) {
	svc, gateway := newTestAdminService(t, &sessionmocks.ConfirmPrompt{})
	ctx := context.Background()

	gateway.EXPECT().ListUsers(gomock.Any()).Return([]model.User{
		{ID: 1, FirstName: "Alice", Role: "user"},
		{ID: 2, FirstName: "Bob", Role: "user"},
	}, nil)
	_, err := svc.Users(ctx)
	require.NoError(t, err)

	updated := model.User{ID: 2, FirstName: "Bob", Role: "admin"}
	gateway.EXPECT().UpdateUser(gomock.Any(), updated).Return(nil)

	require.NoError(t, svc.UpdateUser(ctx, updated))

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[1].Role)
	assert.Equal(t, "user", users[0].Role)
}

func TestAdminService_UpdateUser_FailureLeavesCacheUntouched(t *testing.T) {
	svc, gateway := newTestAdminService(t, &sessionmocks.ConfirmPrompt{})
	ctx := context.Background()

	gateway.EXPECT().ListUsers(gomock.Any()).Return([]model.User{
		{ID: 1, FirstName: "Alice", Role: "user"},
	}, nil)
	_, err := svc.Users(ctx)
	require.NoError(t, err)

	gateway.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	err = svc.UpdateUser(ctx, model.User{ID: 1, FirstName: "Alice", Role: "admin"})
	require.Error(t, err)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user", users[0].Role)
}

func TestAdminService_UpdateUser_RequiresID(t *testing.T) {
	svc, _ := newTestAdminService(t, &sessionmocks.ConfirmPrompt{})

	err := svc.UpdateUser(context.Background(), model.User{FirstName: "NoID"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAdminService_DeleteUser_Declined(t *testing.T) {
	confirm := &sessionmocks.ConfirmPrompt{Answer: false}
	svc, _ := newTestAdminService(t, confirm)

	// No gateway expectation: a declined confirmation issues no call.
	deleted, err := svc.DeleteUser(context.Background(), 7)

	require.NoError(t, err)
	assert.False(t, deleted)
	require.Len(t, confirm.Prompts, 1)
	assert.Contains(t, confirm.Prompts[0], "7")
}

func TestAdminService_DeleteUser_Confirmed(t *testing.T) {
	confirm := &sessionmocks.ConfirmPrompt{Answer: true}
	svc, gateway := newTestAdminService(t, confirm)
	ctx := context.Background()

	gateway.EXPECT().ListUsers(gomock.Any()).Return([]model.User{
		{ID: 7, FirstName: "Alice"},
		{ID: 8, FirstName: "Bob"},
	}, nil)
	_, err := svc.Users(ctx)
	require.NoError(t, err)

	gateway.EXPECT().DeleteUser(gomock.Any(), int64(7)).Return(nil).Times(1)

	deleted, err := svc.DeleteUser(ctx, 7)
	require.NoError(t, err)
	assert.True(t, deleted)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(8), users[0].ID)
}

func TestAdminService_DeleteUser_ConfirmError(t *testing.T) {
	confirm := &sessionmocks.ConfirmPrompt{
		ConfirmFunc: func(string) (bool, error) {
			return false, errors.New("stdin closed")
		},
	}
	svc, _ := newTestAdminService(t, confirm)

	deleted, err := svc.DeleteUser(context.Background(), 7)
	require.Error(t, err)
	assert.False(t, deleted)
}

func TestAdminService_AddChannel_Validation(t *testing.T) {
	svc, _ := newTestAdminService(t, &sessionmocks.ConfirmPrompt{})
	ctx := context.Background()

	_, err := svc.AddChannel(ctx, model.Channel{URL: "https://t.me/x"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.AddChannel(ctx, model.Channel{Name: "X"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAdminService_AddChannel_AppendsToCache(t *testing.T) {
	svc, gateway := newTestAdminService(t, &sessionmocks.ConfirmPrompt{})
	ctx := context.Background()

	gateway.EXPECT().ListChannels(gomock.Any()).Return([]model.Channel{
		{ID: 1, ChannelID: -100, Name: "Announce", URL: "https://t.me/announce"},
	}, nil)
	_, err := svc.Channels(ctx)
	require.NoError(t, err)

	input := model.Channel{ChannelID: -200, Name: "Community", URL: "https://t.me/community"}
	created := input
	created.ID = 2
	gateway.EXPECT().CreateChannel(gomock.Any(), input).Return(created, nil)

	got, err := svc.AddChannel(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	channels, err := svc.Channels(ctx)
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, int64(2), channels[1].ID)
}

func TestAdminService_RemoveChannel_Confirmed(t *testing.T) {
	confirm := &sessionmocks.ConfirmPrompt{Answer: true}
	svc, gateway := newTestAdminService(t, confirm)

	gateway.EXPECT().DeleteChannel(gomock.Any(), int64(3)).Return(nil)

	deleted, err := svc.RemoveChannel(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestAdminService_ResolveChannel(t *testing.T) {
	svc, gateway := newTestAdminService(t, &sessionmocks.ConfirmPrompt{})

	gateway.EXPECT().
		ResolveChannel(gomock.Any(), "announce").
		Return(model.ResolvedChannel{ID: -100123, Title: "Announcements"}, nil)

	resolved, err := svc.ResolveChannel(context.Background(), "  announce  ")
	require.NoError(t, err)
	assert.Equal(t, int64(-100123), resolved.ID)
	assert.Equal(t, "Announcements", resolved.Title)

	_, err = svc.ResolveChannel(context.Background(), "   ")
	assert.True(t, apperrors.IsValidation(err))
}

func TestAdminService_AddOrigin_AppendsToCache(t *testing.T) {
	svc, gateway := newTestAdminService(t, &sessionmocks.ConfirmPrompt{})
	ctx := context.Background()

	gateway.EXPECT().ListOrigins(gomock.Any()).Return([]model.Origin{}, nil)
	_, err := svc.Origins(ctx)
	require.NoError(t, err)

	created := model.Origin{ID: 1, URL: "https://widgets.example.com"}
	gateway.EXPECT().CreateOrigin(gomock.Any(), "https://widgets.example.com").Return(created, nil)

	got, err := svc.AddOrigin(ctx, "https://widgets.example.com")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	origins, err := svc.Origins(ctx)
	require.NoError(t, err)
	require.Len(t, origins, 1)
}

func TestAdminService_RemoveOrigin_Declined(t *testing.T) {
	confirm := &sessionmocks.ConfirmPrompt{Answer: false}
	svc, _ := newTestAdminService(t, confirm)

	deleted, err := svc.RemoveOrigin(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestValidateOriginURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https origin", url: "https://widgets.example.com", wantErr: false},
		{name: "http origin", url: "http://example.org", wantErr: false},
		{name: "localhost", url: "http://localhost:3000", wantErr: false},
		{name: "empty", url: "", wantErr: true},
		{name: "whitespace", url: "   ", wantErr: true},
		{name: "no scheme", url: "widgets.example.com", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com", wantErr: true},
		{name: "bare tld", url: "https://com", wantErr: false},
		{name: "bare public suffix", url: "https://vercel.app", wantErr: true},
		{name: "subdomain of public suffix", url: "https://myapp.vercel.app", wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOriginURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
