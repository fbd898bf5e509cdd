package model

// Origin is a web origin allowed to embed the dashboard.
type Origin struct {
	ID  int64  `json:"id"`
	URL string `json:"origin_url"`
}
