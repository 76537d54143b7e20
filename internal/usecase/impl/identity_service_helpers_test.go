package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/internal/domain/repository"
	"fintrack/internal/domain/service"
	"fintrack/internal/infra/auth"
	"fintrack/internal/infra/persistence/memory"
	"fintrack/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSigningSecret = "usecase_test_signing_secret_at_least_32_bytes"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(ttl time.Duration) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: bcrypt.MinCost,
			TokenTTL:   ttl,
			Issuer:     "fintrack-test",
		},
	}
}

// recordingPublisher captures published events and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.IdentityEvent
	err    error
}

func (p *recordingPublisher) PublishIdentityEvent(_ context.Context, event *service.IdentityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) Events() []*service.IdentityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.IdentityEvent(nil), p.events...)
}

// flowFixtures wires the real hasher, token service and in-memory store.
type flowFixtures struct {
	service   usecase.IdentityUsecase
	repo      repository.IdentityRepository
	tokens    service.TokenService
	publisher *recordingPublisher
}

func newFlowFixtures(t *testing.T) flowFixtures {
	t.Helper()

	cfg := newTestConfig(time.Hour)

	hasher, err := auth.NewBcryptHasher(cfg)
	require.NoError(t, err)

	tokens, err := auth.NewJWTService(auth.NewStaticSigningKey([]byte(testSigningSecret), cfg.Auth.Issuer))
	require.NoError(t, err)

	repo := memory.NewIdentityRepository()
	publisher := &recordingPublisher{}

	srv := NewIdentityService(IdentityServiceParams{
		IdentityRepo: repo,
		Hasher:       hasher,
		TokenService: tokens,
		Publisher:    publisher,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})

	return flowFixtures{
		service:   srv,
		repo:      repo,
		tokens:    tokens,
		publisher: publisher,
	}
}
