package config

import "time"

// Polling Constants
const (
	// DefaultPollInterval is the wait time between poll cycles
	DefaultPollInterval = 15 * time.Second

	// DefaultFetchLimit is the number of most recent items fetched per provider
	DefaultFetchLimit = 3

	// DefaultRecentWindow bounds the per-provider seen-key cache
	DefaultRecentWindow = 50
)

// Transport Constants
const (
	// DefaultFetchTimeout bounds every fetch collaborator call
	DefaultFetchTimeout = 10 * time.Second
)

// API Constants
const (
	// DefaultAPIPort is the listen port for the read-only HTTP API
	DefaultAPIPort = "8080"

	// DefaultStoreLimit bounds the recent-incident window served by the API
	DefaultStoreLimit = 100
)
