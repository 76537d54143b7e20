package service

import (
	"context"
	"time"
)

// Identity event types.
const (
	EventIdentityRegistered = "identity.registered"
)

// IdentityEvent announces identity lifecycle changes to downstream services
// that namespace user data by ExternalRef.
type IdentityEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	IdentityID  string    `json:"identity_id"`
	ExternalRef string    `json:"external_ref"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishIdentityEvent publishes an identity event for async consumers
	PublishIdentityEvent(ctx context.Context, event *IdentityEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
