package ports

import (
	"context"

	"github.com/farstack/heimdall/core"
)

// SignInVerifier validates a wallet-signed sign-in message bound to a
// domain and nonce, returning the identity it proves.
//
// Implementations may do blocking network I/O (checking chain state);
// the service treats the verifier as an injected dependency so tests
// can swap in a double and the expensive production instance is built
// once per process.
type SignInVerifier interface {
	// Verify returns the verified identity, or one of
	// core.ErrVerificationFailed, core.ErrMissingFid,
	// core.ErrMissingAddress.
	Verify(ctx context.Context, req core.VerificationRequest) (core.Identity, error)
}
