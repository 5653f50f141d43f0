package ports

import "context"

// LoginThrottle limits repeated login attempts per identifier.
type LoginThrottle interface {
	// Allow records one attempt and reports whether it is within the window.
	Allow(ctx context.Context, identifier string) (bool, error)
	// Reset clears the attempt counter after a successful login.
	Reset(ctx context.Context, identifier string) error
}
