package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"fintrack/internal/domain/lifecycle"
	"fintrack/internal/domain/service"
	"fintrack/internal/errors"

	"gocloud.dev/pubsub"
	// mem:// topics for development and tests.
	_ "gocloud.dev/pubsub/mempubsub"
)

// gocloudPublisher implements EventPublisher on a portable Go CDK topic.
// The broker is chosen by the URL scheme.
type gocloudPublisher struct {
	topic  *pubsub.Topic
	logger *slog.Logger
}

// NewGocloudPublisher opens the topic at topicURL.
func NewGocloudPublisher(ctx context.Context, topicURL string, logger *slog.Logger) (service.EventPublisher, error) {
	topic, err := pubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open topic %s", topicURL)
	}

	logger.Info("Go CDK Pub/Sub publisher initialized",
		slog.String("topic_url", topicURL),
	)

	return &gocloudPublisher{
		topic:  topic,
		logger: logger,
	}, nil
}

// PublishIdentityEvent sends the event and waits for the driver to accept it.
func (p *gocloudPublisher) PublishIdentityEvent(ctx context.Context, event *service.IdentityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.InfoContext(ctx, "[GocloudPubSub] Publishing event",
		slog.String("event_type", event.Type),
		slog.String("identity_id", event.IdentityID),
	)

	if err := p.topic.Send(ctx, &pubsub.Message{
		Body:     data,
		Metadata: eventAttributes(event),
	}); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Close flushes pending sends and releases the topic.
func (p *gocloudPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	return errors.WithStack(p.topic.Shutdown(ctx))
}
