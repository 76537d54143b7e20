// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"fintrack/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrIdentityNotFound is returned when no identity matches the lookup key.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrDuplicateEmail is returned by Create when the email is already taken.
	ErrDuplicateEmail = errors.New("identity email already exists")
)

// IdentityRepository is the identity store contract consumed by the auth flows.
// Create must be atomic with respect to email uniqueness: of N concurrent
// creates for one email exactly one succeeds and the rest get ErrDuplicateEmail.
type IdentityRepository interface {
	// FindByEmail retrieves an identity by its (normalized) email.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// FindByID retrieves an identity by its store-assigned ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// Create persists a new identity and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, identity *entity.Identity) error
}
