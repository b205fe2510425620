package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can tell about an access token without the
// signing key.
type TokenInfo struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

type accessClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// InspectToken decodes the JWT claims of token without verifying the
// signature. Opaque (non-JWT) tokens yield an empty TokenInfo and false.
// The result is for display only and must never be used for trust
// decisions.
func InspectToken(token string) (TokenInfo, bool) {
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, false
	}

	info := TokenInfo{Subject: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, true
}
