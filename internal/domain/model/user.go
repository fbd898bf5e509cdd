package model

// Package model contains the administrative resource records managed
// through the backend admin API. The backend is the source of truth;
// the client holds transient copies for display and editing only.

// User is a registered account as stored by the backend.
// JSON field names follow the backend wire format.
type User struct {
	ID         int64  `json:"id"`
	TelegramID int64  `json:"telegram_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name,omitempty"`
	Username   string `json:"username,omitempty"`
	PhotoURL   string `json:"photo_url,omitempty"`
	Name       string `json:"name,omitempty"`
	Role       string `json:"role"`
	IsBlocked  bool   `json:"is_blocked"`
}

// DisplayName returns the best available human-readable name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}
