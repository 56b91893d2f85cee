package ports

import "github.com/farstack/heimdall/core"

// Tokenizer issues and verifies session tokens.
type Tokenizer interface {
	// Issue mints a signed, time-bounded session token for a verified
	// identity. Pure computation, no side effects; the client is the
	// only holder of the result.
	Issue(identity core.Identity) (string, error)

	// Verify checks the token's signature and expiry and returns the
	// embedded identity. It is total: any input, however malformed,
	// yields (identity, true) or (zero, false) and never panics.
	Verify(token string) (core.Identity, bool)
}
