package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"fintrack/internal/domain/entity"
	"fintrack/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentity(email string) *entity.Identity {
	return &entity.Identity{
		DisplayName: "Alice",
		Email:       email,
		SecretHash:  "hash",
		Salt:        "salt",
		ExternalRef: "ref_test",
	}
}

func TestIdentityRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository()

	identity := newIdentity("alice@example.com")
	require.NoError(t, repo.Create(ctx, identity))
	assert.NotEqual(t, uuid.Nil, identity.ID)
	assert.False(t, identity.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.SecretHash)

	byID, err := repo.FindByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	// Returned records are copies.
	byID.DisplayName = "Mallory"
	again, err := repo.FindByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.DisplayName)
}

func TestIdentityRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository()

	_, err := repo.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))
}

func TestIdentityRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository()

	require.NoError(t, repo.Create(ctx, newIdentity("alice@example.com")))

	err := repo.Create(ctx, newIdentity("alice@example.com"))
	assert.True(t, errors.Is(err, repository.ErrDuplicateEmail))
}

func TestIdentityRepository_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository()

	const workers = 32
	var (
		wg         sync.WaitGroup
		successes  atomic.Int32
		duplicates atomic.Int32
	)

	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			err := repo.Create(ctx, newIdentity("race@example.com"))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, repository.ErrDuplicateEmail):
				duplicates.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(workers-1), duplicates.Load())
}

func TestIdentityRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository()

	identity := newIdentity("alice@example.com")
	require.NoError(t, repo.Create(ctx, identity))

	repo.(*identityRepository).Delete(ctx, identity.ID)

	_, err := repo.FindByID(ctx, identity.ID)
	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))
	require.NoError(t, repo.Create(ctx, newIdentity("alice@example.com")))
}

func TestIdentityRepository_HonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewIdentityRepository()

	_, err := repo.FindByEmail(ctx, "alice@example.com")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(repo.Create(ctx, newIdentity("alice@example.com")), context.Canceled))
}
