package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the fixed session-token payload schema. The payload
// carries exactly fid, address, iat and exp; unknown fields in a
// presented token are ignored and never reach verification decisions.
type SessionClaims struct {
	Fid     int64  `json:"fid"`
	Address string `json:"address"`
	jwt.RegisteredClaims
}
