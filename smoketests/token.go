package smoketests

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the harness reports about a token. It is never used for any authorization
// decision.
type TokenInfo struct {
	Subject   string
	Email     string
	Scope     string
	ExpiresAt time.Time
}

// DecodeToken reads the claims of a JWT without verifying its signature.
func DecodeToken(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("token is not a well-formed JWT: %w", err)
	}
	var info TokenInfo
	info.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	info.Email, _ = claims["email"].(string)
	info.Scope, _ = claims["scope"].(string)
	return info, nil
}

func (t TokenInfo) String() string {
	expiry := "no expiry"
	if !t.ExpiresAt.IsZero() {
		expiry = "expires " + t.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("subject=%q email=%q scope=%q, %s", t.Subject, t.Email, t.Scope, expiry)
}
