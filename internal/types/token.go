package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in an API bearer token.
// The subject names the client the token was issued to.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// SubjectName returns the token subject, or an empty string when none is set
func (c *TokenClaims) SubjectName() string {
	sub, _ := c.GetSubject()
	return sub
}
