package models

import "time"

// Counter is one persisted rate-limit entry. IDHash is the one-way hash of
// the caller identity; the raw identity never reaches a store.
type Counter struct {
	IDHash       string
	RequestCount int
	WindowStart  time.Time
}

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfter is how long until the current window ends. Zero when allowed.
	RetryAfter time.Duration
}
