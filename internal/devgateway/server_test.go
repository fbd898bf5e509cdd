package devgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinwheel/gatekeeper/internal/domain/model"
)

func newTestServer(t *testing.T) (*httptest.Server, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	srv := NewServer(ServerOptions{
		Store:    store,
		Bindings: NewMemoryBindingStore(),
		AdminID:  "admin-42",
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func postJSON(t *testing.T, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(encoded))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, data
}

func TestServer_Health(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_SecureLogin_FirstBindWins(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/secure-login", map[string]any{
		"telegram_id": 42, "device_id": "device-1", "name": "Alice",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decision loginResponse
	require.NoError(t, json.Unmarshal(body, &decision))
	assert.False(t, decision.Blocked)
	assert.Equal(t, "user", decision.Role)

	// A different account from the same device is refused.
	_, body = postJSON(t, ts.URL+"/secure-login", map[string]any{
		"telegram_id": 43, "device_id": "device-1", "name": "Mallory",
	}, nil)
	require.NoError(t, json.Unmarshal(body, &decision))
	assert.True(t, decision.Blocked)
	assert.Contains(t, decision.Reason, "another account")

	// The original account keeps working.
	_, body = postJSON(t, ts.URL+"/secure-login", map[string]any{
		"telegram_id": 42, "device_id": "device-1", "name": "Alice",
	}, nil)
	require.NoError(t, json.Unmarshal(body, &decision))
	assert.False(t, decision.Blocked)
}

func TestServer_SecureLogin_BlockedAccount(t *testing.T) {
	ts, store := newTestServer(t)
	ctx := context.Background()

	created, err := store.UpsertUser(ctx, model.User{TelegramID: 42, FirstName: "Alice"})
	require.NoError(t, err)
	created.IsBlocked = true
	require.NoError(t, store.UpdateUser(ctx, created))

	_, body := postJSON(t, ts.URL+"/secure-login", map[string]any{
		"telegram_id": 42, "device_id": "device-1", "name": "Alice",
	}, nil)

	var decision loginResponse
	require.NoError(t, json.Unmarshal(body, &decision))
	assert.True(t, decision.Blocked)
	assert.Contains(t, decision.Reason, "blocked")
}

func TestServer_SecureLogin_InvalidRequest(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := postJSON(t, ts.URL+"/secure-login", map[string]any{"telegram_id": 42}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_VerifyMembership_OrderAndJoin(t *testing.T) {
	ts, store := newTestServer(t)
	ctx := context.Background()

	_, err := store.CreateChannel(ctx, model.Channel{ChannelID: -100, Name: "Announce", URL: "https://t.me/announce"})
	require.NoError(t, err)
	_, err = store.CreateChannel(ctx, model.Channel{ChannelID: -200, Name: "Community", URL: "https://t.me/community"})
	require.NoError(t, err)

	_, body := postJSON(t, ts.URL+"/verify-membership", map[string]any{"telegram_id": 42}, nil)
	var result verifyResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.Verified)
	require.Len(t, result.MissingChannels, 2)
	assert.Equal(t, "Announce", result.MissingChannels[0].Name)
	assert.Equal(t, "Community", result.MissingChannels[1].Name)

	// Joining one channel removes it from the missing list.
	_, _ = postJSON(t, ts.URL+"/dev/join", map[string]any{"telegram_id": 42, "channel_id": -100}, nil)

	_, body = postJSON(t, ts.URL+"/verify-membership", map[string]any{"telegram_id": 42}, nil)
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.Verified)
	require.Len(t, result.MissingChannels, 1)
	assert.Equal(t, "Community", result.MissingChannels[0].Name)

	_, _ = postJSON(t, ts.URL+"/dev/join", map[string]any{"telegram_id": 42, "channel_id": -200}, nil)

	_, body = postJSON(t, ts.URL+"/verify-membership", map[string]any{"telegram_id": 42}, nil)
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Verified)
	assert.Empty(t, result.MissingChannels)
}

func TestServer_Admin_RequiresHeader(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/admin/users")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/admin/users", nil)
	require.NoError(t, err)
	req.Header.Set("x-admin-id", "wrong")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
}

func TestServer_Admin_ChannelCRUD(t *testing.T) {
	ts, _ := newTestServer(t)
	headers := map[string]string{"x-admin-id": "admin-42"}

	resp, body := postJSON(t, ts.URL+"/admin/channels", map[string]any{
		"channel_id": -100, "channel_name": "Announce", "channel_url": "https://t.me/announce",
	}, headers)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.Channel
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, int64(1), created.ID)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/admin/channels/1", nil)
	require.NoError(t, err)
	req.Header.Set("x-admin-id", "admin-42")
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	// Deleting again reports not found.
	req2, err := http.NewRequest(http.MethodDelete, ts.URL+"/admin/channels/1", nil)
	require.NoError(t, err)
	req2.Header.Set("x-admin-id", "admin-42")
	delResp2, err := http.DefaultClient.Do(req2)
	require.NoError(t, err)
	defer delResp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, delResp2.StatusCode)
}

func TestServer_Admin_ResolveChannelDeterministic(t *testing.T) {
	ts, _ := newTestServer(t)
	headers := map[string]string{"x-admin-id": "admin-42"}

	_, body := postJSON(t, ts.URL+"/admin/resolve-channel", map[string]any{"username": "@announce"}, headers)
	var first model.ResolvedChannel
	require.NoError(t, json.Unmarshal(body, &first))
	assert.Negative(t, first.ID)
	assert.Equal(t, "Announce", first.Title)

	// The same handle, with or without the at sign, resolves identically.
	_, body = postJSON(t, ts.URL+"/admin/resolve-channel", map[string]any{"username": "announce"}, headers)
	var second model.ResolvedChannel
	require.NoError(t, json.Unmarshal(body, &second))
	assert.Equal(t, first, second)
}

func TestServer_Admin_EmptyHandle(t *testing.T) {
	ts, _ := newTestServer(t)
	headers := map[string]string{"x-admin-id": "admin-42"}

	resp, _ := postJSON(t, ts.URL+"/admin/resolve-channel", map[string]any{"username": "@"}, headers)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
