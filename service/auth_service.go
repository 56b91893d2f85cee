package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/farstack/heimdall/core"
	"github.com/farstack/heimdall/ports"
)

// DefaultNonceTTL is how long a consumed nonce is remembered. It only
// needs to outlive the window in which a signed message is acceptable.
const DefaultNonceTTL = 10 * time.Minute

// AuthService handles sign-in verification, session issuance and
// per-account authorization. It holds no mutable state; every method is
// safe for concurrent use.
type AuthService struct {
	verifier  ports.SignInVerifier
	tokenizer ports.Tokenizer
	nonces    ports.NonceStore
	eventPub  ports.EventPublisher
	logger    *zap.Logger

	nonceTTL time.Duration
}

// NewAuthService creates a new authentication service. eventPub may be
// nil when no broker is configured.
func NewAuthService(
	verifier ports.SignInVerifier,
	tokenizer ports.Tokenizer,
	nonces ports.NonceStore,
	eventPub ports.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		verifier:  verifier,
		tokenizer: tokenizer,
		nonces:    nonces,
		eventPub:  eventPub,
		logger:    logger,
		nonceTTL:  DefaultNonceTTL,
	}
}

// SignIn runs the verify-then-issue pipeline: the sign-in message is
// checked by the verifier, the nonce is consumed, and a session token
// is minted for the verified identity.
//
// Every authentication failure is returned as core.ErrAuthenticationFailed;
// the distinct cause (verifier rejection, missing fid, missing address,
// replayed nonce) is logged here and never reaches the client. Any other
// error is an internal failure.
func (s *AuthService) SignIn(ctx context.Context, req core.VerificationRequest) (string, core.Identity, error) {
	identity, err := s.verifier.Verify(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrMissingFid):
			s.logger.Warn("sign-in rejected: verifier returned no fid", zap.String("domain", req.Domain))
		case errors.Is(err, core.ErrMissingAddress):
			s.logger.Warn("sign-in rejected: verifier returned no address", zap.String("domain", req.Domain))
		case errors.Is(err, core.ErrVerificationFailed):
			s.logger.Warn("sign-in rejected: verification failed", zap.String("domain", req.Domain), zap.Error(err))
		default:
			s.logger.Warn("sign-in rejected: verifier error", zap.String("domain", req.Domain), zap.Error(err))
		}
		return "", core.Identity{}, core.ErrAuthenticationFailed
	}

	// Consume the nonce only after the signature checked out, so an
	// unauthenticated caller cannot burn someone else's nonce.
	fresh, err := s.nonces.Consume(ctx, req.Nonce, s.nonceTTL)
	if err != nil {
		return "", core.Identity{}, fmt.Errorf("nonce store: %w", err)
	}
	if !fresh {
		s.logger.Warn("sign-in rejected: nonce replay",
			zap.Int64("fid", identity.Fid), zap.String("domain", req.Domain))
		return "", core.Identity{}, core.ErrAuthenticationFailed
	}

	token, err := s.tokenizer.Issue(identity)
	if err != nil {
		return "", core.Identity{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	identity = identity.Normalize()

	// Best effort; a broker outage must not fail the sign-in.
	if s.eventPub != nil {
		if err := s.eventPub.PublishSignIn(ctx, identity, req.Domain); err != nil {
			s.logger.Warn("failed to publish sign-in event", zap.Int64("fid", identity.Fid), zap.Error(err))
		}
	}

	s.logger.Info("session issued", zap.Int64("fid", identity.Fid), zap.String("domain", req.Domain))

	return token, identity, nil
}

// Authenticate validates a session token and returns the identity it
// carries. It never reports why a token was rejected; malformed,
// tampered and expired all look the same to the caller.
func (s *AuthService) Authenticate(token string) (core.Identity, bool) {
	return s.tokenizer.Verify(token)
}

// Authorize reports whether the authenticated identity may access a
// resource belonging to the requested fid.
func (s *AuthService) Authorize(identity core.Identity, fid int64) bool {
	return identity.Fid == fid
}
