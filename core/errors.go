package core

import "errors"

var (
	// ErrVerificationFailed covers a rejected signature, a domain or nonce
	// mismatch, and an unparseable sign-in message.
	ErrVerificationFailed = errors.New("sign-in verification failed")

	// ErrMissingFid means the verifier accepted the signature but the
	// result carried no account id.
	ErrMissingFid = errors.New("verified sign-in has no fid")

	// ErrMissingAddress means the verifier accepted the signature but the
	// result carried no wallet address.
	ErrMissingAddress = errors.New("verified sign-in has no address")

	// ErrNonceUsed means the nonce was already consumed by an earlier
	// successful sign-in.
	ErrNonceUsed = errors.New("nonce already used")

	// ErrAuthenticationFailed is the single outcome surfaced to clients
	// for any of the above; the specific cause stays in the server logs.
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrInvalidToken = errors.New("invalid session token")
)
