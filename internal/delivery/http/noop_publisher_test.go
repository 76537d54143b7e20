package http

import (
	"context"

	"fintrack/internal/domain/service"
)

type noopPublisher struct{}

func (noopPublisher) PublishIdentityEvent(context.Context, *service.IdentityEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
