package model

import "time"

// RateLimitEntry is one live counter in the in-memory rate-limit store.
// At most one entry exists per key; Count only grows within a window and is
// replaced wholesale once ResetTime passes.
type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimitConfig is the quota for one endpoint class.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RateLimitDecision is the outcome of a single admission check.
type RateLimitDecision struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}
