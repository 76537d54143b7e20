package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the signed fields of a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IdentityID parses the subject claim.
func (c *Claims) IdentityID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService issues and verifies stateless bearer tokens.
type TokenService interface {
	// Issue signs a token bound to identityID and email that expires ttl after issuance.
	Issue(identityID uuid.UUID, email string, ttl time.Duration) (token string, claims *Claims, err error)

	// Verify checks the signature, then that now is before the expiry.
	Verify(token string) (*Claims, error)
}
