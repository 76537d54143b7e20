// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"fintrack/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new identity.
// Length caps match the identities table columns.
type RegisterInput struct {
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,max=255"`
	Password    string `json:"password" validate:"required"`
}

// LoginInput defines the data required for an identity to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the new identity's public fields and a session token.
type RegisterOutput struct {
	Identity  entity.PublicIdentity `json:"identity"`
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expiresAt"`
}

// LoginOutput returns the session token bound to the authenticated identity.
type LoginOutput struct {
	IdentityID uuid.UUID `json:"identityId"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// IdentityUsecase defines the account authentication operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type IdentityUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	GetCurrentIdentity(ctx context.Context, identityID uuid.UUID) (*entity.IdentityProfile, error)
}
