// Package ratelimit provides token-bucket limiters keyed by caller identity.
package ratelimit

import "context"

type Limiter interface {
	// Allow takes one token from key's bucket and reports whether one was
	// available.
	Allow(ctx context.Context, key string) (bool, error)
}
