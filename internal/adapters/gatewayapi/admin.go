package gatewayapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spinwheel/gatekeeper/internal/domain/model"
	apperrors "github.com/spinwheel/gatekeeper/internal/errors"
)

// AdminIDHeader carries the administrator identifier on every admin
// call. The backend is the sole enforcement point for authorization.
const AdminIDHeader = "x-admin-id"

// AdminConfig captures the configuration for the admin API client.
type AdminConfig struct {
	BaseURL string
	AdminID string
	Timeout time.Duration
	Client  *http.Client
}

// AdminClient performs privileged CRUD against the backend admin API.
// Mutations are single-shot: no retry, no deduplication.
type AdminClient struct {
	baseURL string
	adminID string
	client  *http.Client
}

// NewAdminClient builds an admin API client.
func NewAdminClient(cfg AdminConfig) (*AdminClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	adminID := strings.TrimSpace(cfg.AdminID)
	if adminID == "" {
		return nil, errors.New("admin id is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &AdminClient{baseURL: baseURL, adminID: adminID, client: hc}, nil
}

// ListUsers fetches all user records.
func (c *AdminClient) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser submits the full user record to the backend.
func (c *AdminClient) UpdateUser(ctx context.Context, user model.User) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", user.ID), user, nil)
}

// DeleteUser removes a user record.
func (c *AdminClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil)
}

// ListChannels fetches all required-channel records.
func (c *AdminClient) ListChannels(ctx context.Context) ([]model.Channel, error) {
	var channels []model.Channel
	if err := c.do(ctx, http.MethodGet, "/admin/channels", nil, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// CreateChannel creates a required-channel record and returns the
// stored record, including its assigned id.
func (c *AdminClient) CreateChannel(ctx context.Context, channel model.Channel) (model.Channel, error) {
	var created model.Channel
	if err := c.do(ctx, http.MethodPost, "/admin/channels", channel, &created); err != nil {
		return model.Channel{}, err
	}
	return created, nil
}

// DeleteChannel removes a required-channel record.
func (c *AdminClient) DeleteChannel(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/channels/%d", id), nil, nil)
}

// ListOrigins fetches all allowed-origin records.
func (c *AdminClient) ListOrigins(ctx context.Context) ([]model.Origin, error) {
	var origins []model.Origin
	if err := c.do(ctx, http.MethodGet, "/admin/origins", nil, &origins); err != nil {
		return nil, err
	}
	return origins, nil
}

// CreateOrigin creates an allowed-origin record.
func (c *AdminClient) CreateOrigin(ctx context.Context, originURL string) (model.Origin, error) {
	payload := struct {
		URL string `json:"origin_url"`
	}{URL: originURL}

	var created model.Origin
	if err := c.do(ctx, http.MethodPost, "/admin/origins", payload, &created); err != nil {
		return model.Origin{}, err
	}
	return created, nil
}

// DeleteOrigin removes an allowed-origin record.
func (c *AdminClient) DeleteOrigin(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/origins/%d", id), nil, nil)
}

// ResolveChannel resolves a channel handle to its platform id and title.
func (c *AdminClient) ResolveChannel(ctx context.Context, handle string) (model.ResolvedChannel, error) {
	payload := struct {
		Username string `json:"username"`
	}{Username: handle}

	var resolved model.ResolvedChannel
	if err := c.do(ctx, http.MethodPost, "/admin/resolve-channel", payload, &resolved); err != nil {
		return model.ResolvedChannel{}, err
	}
	return resolved, nil
}

// do issues one admin API call with the admin-id header attached.
// Non-2xx statuses become admin errors carrying the trimmed body.
func (c *AdminClient) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(AdminIDHeader, c.adminID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeAdmin, "%s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		detail := strings.TrimSpace(string(respBody))
		if detail == "" {
			return apperrors.Adminf("%s %s: %s", method, path, resp.Status)
		}
		return apperrors.Adminf("%s %s: %s: %s", method, path, resp.Status, detail)
	}

	return decodeAndCloseAdmin(resp, out)
}

func decodeAndCloseAdmin(resp *http.Response, out any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeAdmin, "decode response")
	}
	return nil
}
