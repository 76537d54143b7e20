package pubsub

import "fintrack/internal/domain/service"

// eventAttributes builds the message attributes consumers filter and trace on.
func eventAttributes(event *service.IdentityEvent) map[string]string {
	attributes := map[string]string{
		"event_id":     event.EventID,
		"event_type":   event.Type,
		"identity_id":  event.IdentityID,
		"external_ref": event.ExternalRef,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
