package model

import "time"

// Watchlist is the persisted list of ticker symbols.
type Watchlist struct {
	Symbols   []string  `json:"symbols"`
	UpdatedAt time.Time `json:"updated_at"`
}
