package ubereats

import (
	"encoding/json"
	"fmt"

	"orderhub/internal/domain/order"
)

// Recognized webhook event types. Both continue through the same
// token-acquisition, fetch, validate and store path; cancel events are
// acknowledged separately so a future status transition can hook in here.
const (
	EventTypeNotification = "orders.notification"
	EventTypeCancel       = "orders.cancel"
)

// WebhookEvent is the Uber Eats webhook envelope. Unlike Rappi and Didi Food,
// the body is not the order itself: resource_href points at the full order
// document, which requires an authorized follow-up fetch.
type WebhookEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	EventTime    int64     `json:"event_time"`
	ResourceHref string    `json:"resource_href"`
	Meta         EventMeta `json:"meta"`
}

type EventMeta struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Status     string `json:"status"`
}

// ParseWebhookEvent decodes and checks the webhook envelope.
func ParseWebhookEvent(raw []byte) (WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return WebhookEvent{}, fmt.Errorf("%w: Invalid Uber Eats event structure: %v", order.ErrInvalidOrder, err)
	}

	if event.EventType != EventTypeNotification && event.EventType != EventTypeCancel {
		return WebhookEvent{}, fmt.Errorf("%w: unsupported Uber Eats event type: %q", order.ErrInvalidOrder, event.EventType)
	}
	if event.ResourceHref == "" {
		return WebhookEvent{}, fmt.Errorf("%w: Invalid Uber Eats event structure: missing resource_href", order.ErrInvalidOrder)
	}

	return event, nil
}
