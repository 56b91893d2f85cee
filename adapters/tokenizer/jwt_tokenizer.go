package tokenizer

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/farstack/heimdall/core"
	"github.com/farstack/heimdall/ports"
)

// SessionTTL is the fixed lifetime of a session token. A token is not
// renewable; once it expires the client signs in again.
const SessionTTL = 24 * time.Hour

// JWTTokenizer implements the Tokenizer interface with HS256 JWTs. The
// secret is loaded once at process start and never mutated, so a single
// tokenizer is safe to share across concurrent requests.
type JWTTokenizer struct {
	secret []byte
}

// NewJWTTokenizer creates a new JWT tokenizer
func NewJWTTokenizer(secret []byte) ports.Tokenizer {
	return &JWTTokenizer{secret: secret}
}

// Issue converts a verified identity to a signed session token. The
// address is lowercased unconditionally; exp is always iat + SessionTTL.
func (j *JWTTokenizer) Issue(identity core.Identity) (string, error) {
	identity = identity.Normalize()

	now := time.Now()
	claims := SessionClaims{
		Fid:     identity.Fid,
		Address: identity.Address,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// Verify recomputes the MAC over the token, checks expiry and returns
// the embedded identity. It fails closed on anything else: wrong
// segment count, non-base64 content, a payload that is not valid JSON,
// a tampered signature, an expired token.
func (j *JWTTokenizer) Verify(tokenStr string) (core.Identity, bool) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Only the symmetric method the issuer uses; anything else
		// (including alg=none) is rejected before signature checking.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return core.Identity{}, false
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return core.Identity{}, false
	}

	if claims.Fid == 0 || claims.Address == "" {
		return core.Identity{}, false
	}

	return core.Identity{Fid: claims.Fid, Address: claims.Address}, true
}
