package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the bearer token says about itself. It is read without verifying the
// signature and is only ever displayed.
type TokenInfo struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// DescribeToken decodes JWT claims. Opaque non-JWT tokens yield an error.
func DescribeToken(token string) (TokenInfo, error) {
	if token == "" {
		return TokenInfo{}, ErrNotAuthenticated
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, err
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if info == (TokenInfo{}) {
		return info, errors.New("session: token carries no known claims")
	}
	return info, nil
}
