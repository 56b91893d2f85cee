package core

import "net/url"

// LocalDevDomain is used when a request carries neither an Origin nor a
// Host header, which only happens with dev tooling hitting the server
// directly.
const LocalDevDomain = "localhost:3000"

// ResolveDomain derives the domain a sign-in message must be bound to.
//
// In production the canonical domain always wins, no matter what the
// request headers say; otherwise a parseable Origin header takes
// precedence over Host so tunnel and proxy setups (where the two
// diverge) keep working. A malformed Origin is ignored rather than
// failing the request.
func ResolveDomain(production bool, canonicalDomain, host, origin string) string {
	if production {
		return canonicalDomain
	}
	if origin != "" {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			return u.Host
		}
	}
	if host != "" {
		return host
	}
	return LocalDevDomain
}
