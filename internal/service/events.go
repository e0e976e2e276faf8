package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/yoga_studio/internal/logging"
)

const (
	EventUserRegistered = "user_registered"
	EventUserDeleted    = "user_deleted"
	EventSessionCreated = "session_created"
	EventSessionUpdated = "session_updated"
	EventSessionDeleted = "session_deleted"
	EventSessionJoined  = "session_joined"
	EventSessionLeft    = "session_left"
)

const publishTimeout = 5 * time.Second

// publish sends a domain event. Delivery problems are logged, never returned.
func publish(ctx context.Context, p EventPublisher, key any, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.PublishEvent(ctx, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", event["type"], "error", err)
	}
}
