// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"fintrack/internal/errors"

	"github.com/google/uuid"
)

// ExternalRefPrefix marks correlation tokens handed to downstream data owners.
const ExternalRefPrefix = "ref_"

// Identity is one registered account.
type Identity struct {
	ID          uuid.UUID // Assigned by the store on create. Immutable.
	DisplayName string    // Human-readable label, non-empty.
	Email       string    // Login key, unique across identities.
	SecretHash  string    `json:"-"` // Credential hasher output. Never leaves the hasher/store boundary.
	Salt        string    `json:"-"` // Per-record salt stored alongside SecretHash.
	ExternalRef string    // Namespaces this account's data in goal/transaction services. Set once.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublicIdentity is the registration-safe projection of an Identity.
type PublicIdentity struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
}

// IdentityProfile is what an authenticated caller may read about itself.
type IdentityProfile struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	ExternalRef string `json:"externalRef"`
}

// Public projects the identity without credential material.
func (i *Identity) Public() PublicIdentity {
	return PublicIdentity{
		ID:          i.ID,
		Email:       i.Email,
		DisplayName: i.DisplayName,
	}
}

// Profile projects the identity for the self-read endpoint.
func (i *Identity) Profile() IdentityProfile {
	return IdentityProfile{
		DisplayName: i.DisplayName,
		Email:       i.Email,
		ExternalRef: i.ExternalRef,
	}
}

// NewExternalRef returns ref_<uuidv7>. A v7 UUID carries a millisecond
// timestamp followed by 74 random bits.
func NewExternalRef() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate external ref")
	}

	return ExternalRefPrefix + id.String(), nil
}

// NormalizeEmail trims and lower-cases an email so lookups and the unique
// constraint agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
