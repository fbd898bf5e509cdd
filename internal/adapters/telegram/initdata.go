package telegram

// Package telegram derives an identity claim from the init-data string
// the Telegram WebApp host hands to an embedded page. The claim is
// treated as opaque input: signature verification is the backend's
// concern, not the client's.

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/spinwheel/gatekeeper/internal/domain/auth"
	apperrors "github.com/spinwheel/gatekeeper/internal/errors"
)

// Source implements ports.IdentitySource from a raw init-data string.
type Source struct {
	initData string
}

// NewSource creates an identity source over the given init-data string.
// An empty string is a valid construction; Claim then reports that the
// embedding context supplied no identity.
func NewSource(initData string) *Source {
	return &Source{initData: strings.TrimSpace(initData)}
}

// initDataUser mirrors the embedded "user" JSON object.
type initDataUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
}

// Claim parses the init-data string into an identity claim.
func (s *Source) Claim(_ context.Context) (domainauth.IdentityClaim, error) {
	if s.initData == "" {
		return domainauth.IdentityClaim{}, apperrors.IdentityUnavailable("no identity claim in embedding context")
	}

	values, err := url.ParseQuery(s.initData)
	if err != nil {
		return domainauth.IdentityClaim{}, apperrors.Wrap(err, apperrors.ErrCodeIdentityUnavailable, "parse init data")
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return domainauth.IdentityClaim{}, apperrors.IdentityUnavailable("init data carries no user")
	}

	var user initDataUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return domainauth.IdentityClaim{}, apperrors.Wrap(err, apperrors.ErrCodeIdentityUnavailable, "decode init data user")
	}
	if user.ID == 0 {
		return domainauth.IdentityClaim{}, apperrors.IdentityUnavailable("init data user has no id")
	}

	claim := domainauth.IdentityClaim{
		TelegramID: user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Username:   user.Username,
		PhotoURL:   user.PhotoURL,
	}

	if rawDate := values.Get("auth_date"); rawDate != "" {
		if unix, err := strconv.ParseInt(rawDate, 10, 64); err == nil && unix > 0 {
			claim.AuthDate = time.Unix(unix, 0).UTC()
		}
	}

	return claim, nil
}
