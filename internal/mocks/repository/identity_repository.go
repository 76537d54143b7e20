// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"fintrack/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockIdentityRepository is a mock of repository.IdentityRepository.
type MockIdentityRepository struct {
	mock.Mock
}

// NewMockIdentityRepository creates a mock that asserts its expectations on test cleanup.
func NewMockIdentityRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIdentityRepository {
	m := &MockIdentityRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockIdentityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	args := m.Called(ctx, email)
	identity, _ := args.Get(0).(*entity.Identity)

	return identity, args.Error(1)
}

func (m *MockIdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	args := m.Called(ctx, id)
	identity, _ := args.Get(0).(*entity.Identity)

	return identity, args.Error(1)
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	args := m.Called(ctx, identity)

	return args.Error(0)
}
