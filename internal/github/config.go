package github

import "time"

// Config holds request settings for talking to the GitHub API
type Config struct {
	PerPage               int
	MaxFriends            int
	MaxConcurrentRequests int
	Retries               int
	RetryWait             time.Duration
	RequestsPerSecond     float64
}

// DefaultConfig mirrors the limits of the following endpoint: 5000 IDs per
// account and a 15 minute back-off window.
func DefaultConfig() Config {
	return Config{
		PerPage:               100,
		MaxFriends:            5000,
		MaxConcurrentRequests: 4,
		Retries:               5,
		RetryWait:             15 * time.Minute,
		RequestsPerSecond:     10,
	}
}
