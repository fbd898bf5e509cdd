package gatewayapi

// Package gatewayapi contains HTTP clients for the remote backend: the
// login and membership-verification gateways used by the session flow,
// and the admin gateway used by the operator CLI. All bodies are JSON.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/spinwheel/gatekeeper/internal/domain/auth"
	apperrors "github.com/spinwheel/gatekeeper/internal/errors"
)

// Config captures the subset of backend behaviour the session clients need.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Client talks to the backend's login and verification endpoints.
// Any non-2xx response or transport error is reported as a transport
// failure; callers treat those as fatal to the attempt (fail-closed).
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a backend client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: baseURL, client: hc}, nil
}

type loginRequest struct {
	TelegramID int64  `json:"telegram_id"`
	DeviceID   string `json:"device_id"`
	Name       string `json:"name"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Username   string `json:"username,omitempty"`
	PhotoURL   string `json:"photo_url,omitempty"`
	AuthDate   int64  `json:"auth_date,omitempty"`
}

type loginResponse struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason"`
	Role    string `json:"role"`
}

// Login posts the identity claim and device fingerprint to the secure
// login endpoint. The backend records the pairing and applies its
// blocking policy; the decision is returned verbatim.
func (c *Client) Login(ctx context.Context, claim domainauth.IdentityClaim, fingerprint string) (domainauth.AuthDecision, error) {
	if claim.TelegramID == 0 {
		return domainauth.AuthDecision{}, apperrors.Validation("identity claim has no stable identifier")
	}
	if fingerprint == "" {
		return domainauth.AuthDecision{}, apperrors.Validation("device fingerprint is required")
	}

	req := loginRequest{
		TelegramID: claim.TelegramID,
		DeviceID:   fingerprint,
		Name:       claim.DisplayName(),
		FirstName:  claim.FirstName,
		LastName:   claim.LastName,
		Username:   claim.Username,
		PhotoURL:   claim.PhotoURL,
	}
	if !claim.AuthDate.IsZero() {
		req.AuthDate = claim.AuthDate.Unix()
	}

	var resp loginResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/secure-login", nil, req, &resp); err != nil {
		return domainauth.AuthDecision{}, err
	}

	decision := domainauth.AuthDecision{Blocked: resp.Blocked, Reason: resp.Reason}
	if !resp.Blocked {
		decision.Role = domainauth.Role(resp.Role)
		if decision.Role == "" {
			decision.Role = domainauth.RoleUser
		}
	}
	return decision, nil
}

type verifyRequest struct {
	TelegramID int64 `json:"telegram_id"`
}

type verifyResponse struct {
	Verified        bool                       `json:"verified"`
	MissingChannels []domainauth.RequiredGroup `json:"missing_channels"`
}

// VerifyMembership asks the backend whether the identity satisfies all
// required channels. The missing-channel order is backend-defined and
// returned unchanged.
func (c *Client) VerifyMembership(ctx context.Context, telegramID int64) (domainauth.MembershipResult, error) {
	if telegramID == 0 {
		return domainauth.MembershipResult{}, apperrors.Validation("telegram id is required")
	}

	var resp verifyResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/verify-membership", nil, verifyRequest{TelegramID: telegramID}, &resp); err != nil {
		return domainauth.MembershipResult{}, err
	}

	return domainauth.MembershipResult{
		Satisfied:     resp.Verified,
		MissingGroups: resp.MissingChannels,
	}, nil
}

func normalizeBaseURL(baseURL string) (string, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return "", errors.New("backend base url is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse backend base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("backend base url %q must be absolute", baseURL)
	}
	return baseURL, nil
}

// postJSON issues one JSON POST and decodes the response into out.
// Non-2xx statuses become transport errors carrying the trimmed body.
func postJSON(ctx context.Context, client *http.Client, endpoint string, header http.Header, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeTransport, "post %s", endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(endpoint, resp)
	}

	return decodeAndClose(resp, out)
}

func decodeAndClose(resp *http.Response, out any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeTransport, "decode response")
	}
	return nil
}

func errorFromResponse(endpoint string, resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	closeErr := resp.Body.Close()
	if readErr != nil {
		return apperrors.Wrapf(errors.Join(readErr, closeErr), apperrors.ErrCodeTransport,
			"%s: read error response", endpoint)
	}
	detail := strings.TrimSpace(string(respBody))
	if detail == "" {
		return apperrors.Transportf("%s: %s", endpoint, resp.Status)
	}
	return apperrors.Transportf("%s: %s: %s", endpoint, resp.Status, detail)
}
