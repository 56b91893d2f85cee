package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Identity is a verified Farcaster identity: the numeric account id (fid)
// and the lowercase wallet address that proved control of it. It is only
// produced by a SignInVerifier or recovered from a previously issued
// session token, never built from raw client input.
type Identity struct {
	Fid     int64
	Address string
}

// Normalize lowercases the address. Every identity entering the token
// pipeline goes through this so comparisons are case-insensitive.
func (i Identity) Normalize() Identity {
	i.Address = strings.ToLower(i.Address)
	return i
}

// VerificationRequest carries one sign-in attempt: the signed message, the
// wallet signature over it, the nonce the client committed to, and the
// domain the message must be bound to. Built per request, never persisted.
type VerificationRequest struct {
	Message   string
	Signature string
	Nonce     string
	Domain    string
}

// UserStatus is the downstream per-account resource served by the
// protected status endpoint.
type UserStatus struct {
	Fid       int64           `json:"fid"`
	Score     decimal.Decimal `json:"score"`
	Rank      int             `json:"rank"`
	Streak    int             `json:"streak"`
	UpdatedAt time.Time       `json:"updated_at"`
}
