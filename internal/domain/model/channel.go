package model

// Channel is a required-membership channel record.
// ChannelID is the platform-level numeric identifier resolved from the
// channel handle; it is required before membership can be checked.
type Channel struct {
	ID        int64  `json:"id"`
	ChannelID int64  `json:"channel_id,omitempty"`
	Name      string `json:"channel_name"`
	URL       string `json:"channel_url"`
}

// ResolvedChannel is the result of resolving a channel handle to its
// platform-level identifier and display title.
type ResolvedChannel struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
