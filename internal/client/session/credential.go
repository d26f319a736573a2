package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// credentialExpired reports whether credential is a JWT whose exp claim lies
// before now. The signature is not checked. Opaque or claim-less credentials
// are never considered expired here.
func credentialExpired(credential string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}
