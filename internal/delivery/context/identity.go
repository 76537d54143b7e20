package context

import (
	"fintrack/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeyIdentityID is the key for storing the authenticated identity ID in echo.Context.
	KeyIdentityID ContextKey = "identity_id"

	// KeyClaims is the key for storing verified token claims in echo.Context.
	KeyClaims ContextKey = "claims"
)

// SetIdentity stores the verified claims and the identity they name.
func SetIdentity(c echo.Context, identityID uuid.UUID, claims *service.Claims) {
	c.Set(string(KeyIdentityID), identityID)
	c.Set(string(KeyClaims), claims)
}

// GetIdentityID returns the authenticated identity ID, if the auth middleware ran.
func GetIdentityID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeyIdentityID)).(uuid.UUID)

	return id, ok && id != uuid.Nil
}

// GetClaims returns the verified token claims, or nil.
func GetClaims(c echo.Context) *service.Claims {
	claims, _ := c.Get(string(KeyClaims)).(*service.Claims)

	return claims
}
