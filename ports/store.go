package ports

import (
	"context"
	"time"
)

// NonceStore enforces single use of sign-in nonces.
type NonceStore interface {
	// Consume marks a nonce as used. It returns true if the nonce was
	// fresh and is now consumed, false if it had already been used.
	// The record expires after ttl; a nonce older than the sign-in
	// window no longer needs tracking.
	Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}
