// Package throttle provides request counters for named rate-limit scopes.
package throttle

import (
	"context"
	"time"
)

// Rate allows Requests per Period.
type Rate struct {
	Requests int
	Period   time.Duration
}

// Result describes the outcome of a single Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is how long the caller should wait before the next request
	// would be accepted. Zero when Allowed.
	RetryAfter time.Duration
}

// Limiter counts one request against key under rate.
type Limiter interface {
	Allow(ctx context.Context, key string, rate Rate) (Result, error)
}
