package model

import "time"

// WatchlistEntry is one code on the watchlist with its resolved display name.
type WatchlistEntry struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// WatchlistState is the persisted watchlist.
type WatchlistState struct {
	Codes     []string  `json:"codes"`
	UpdatedAt time.Time `json:"updated_at"`
}
