// Package memory contains an in-process identity store used by tests and
// single-instance deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"fintrack/internal/domain/entity"
	"fintrack/internal/domain/repository"
	"fintrack/internal/errors"

	"github.com/google/uuid"
)

// identityRepository keeps identities in maps guarded by one mutex. The
// email check and insert in Create happen under the same lock, which is what
// makes concurrent duplicate registrations resolve to a single winner.
type identityRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*entity.Identity
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

// NewIdentityRepository returns an empty in-memory store.
func NewIdentityRepository() repository.IdentityRepository {
	return &identityRepository{
		byID:    make(map[uuid.UUID]*entity.Identity),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

func (repo *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byEmail[email]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}

	return clone(repo.byID[id]), nil
}

func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	identity, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}

	return clone(identity), nil
}

func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return errors.Wrap(err, "failed to generate identity id")
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, taken := repo.byEmail[identity.Email]; taken {
		return repository.ErrDuplicateEmail
	}

	now := repo.now()
	identity.ID = id
	identity.CreatedAt = now
	identity.UpdatedAt = now

	repo.byID[id] = clone(identity)
	repo.byEmail[identity.Email] = id

	return nil
}

// Delete removes an identity. Account deletion is owned by another service;
// this exists so tests can model a token outliving its account.
func (repo *identityRepository) Delete(_ context.Context, id uuid.UUID) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if identity, ok := repo.byID[id]; ok {
		delete(repo.byEmail, identity.Email)
		delete(repo.byID, id)
	}
}

func clone(identity *entity.Identity) *entity.Identity {
	if identity == nil {
		return nil
	}
	cp := *identity

	return &cp
}
