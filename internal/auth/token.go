package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenUndecodable is returned when the bearer token's claims payload
// cannot be decoded.
var ErrTokenUndecodable = errors.New("token claims undecodable")

// tokenExpiry extracts the expiry claim from a bearer token without
// verifying its signature. The client holds no key material; the backend
// is the verifier. A zero time with a nil error means the token carries
// no expiry claim.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, ErrTokenUndecodable
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
