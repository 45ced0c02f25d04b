package order

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Platform identifies the external food-delivery service an order came from.
type Platform string

const (
	PlatformUberEats Platform = "uber_eats"
	PlatformRappi    Platform = "rappi"
	PlatformDidiFood Platform = "didi_food"
)

var AvailablePlatforms = []Platform{PlatformUberEats, PlatformRappi, PlatformDidiFood}

func NewPlatform(raw string) (Platform, error) {
	if slices.Contains(AvailablePlatforms, Platform(raw)) {
		return Platform(raw), nil
	}
	return "", fmt.Errorf("unknown platform: %s", raw)
}

// Label returns the human-readable platform name used in webhook responses.
func (p Platform) Label() string {
	switch p {
	case PlatformUberEats:
		return "Uber Eats"
	case PlatformRappi:
		return "Rappi"
	case PlatformDidiFood:
		return "Didi Food"
	default:
		return string(p)
	}
}

// Status is the lifecycle tag of a stored order.
type Status string

const (
	// StatusReceived is the initial status of every ingested order.
	StatusReceived Status = "received"
)

// Envelope is the canonical normalized representation every platform payload
// is converted to before storage. RawPayload is kept verbatim for audit and
// replay; the external order id semantics differ per platform (Uber Eats `id`,
// Rappi `code`, Didi Food `orderNumber`).
type Envelope struct {
	Platform        Platform        `json:"platform"`
	ExternalOrderID string          `json:"external_order_id"`
	RawPayload      json.RawMessage `json:"raw_payload"`
	ProcessedAt     time.Time       `json:"processed_at"`
	Status          Status          `json:"status"`
}

func NewEnvelope(platform Platform, externalOrderID string, rawPayload json.RawMessage) (Envelope, error) {
	if externalOrderID == "" {
		return Envelope{}, fmt.Errorf("%w: empty external order id", ErrInvalidOrder)
	}

	return Envelope{
		Platform:        platform,
		ExternalOrderID: externalOrderID,
		RawPayload:      rawPayload,
		ProcessedAt:     time.Now().UTC(),
		Status:          StatusReceived,
	}, nil
}

// Document renders the order document to persist: the raw platform payload
// with the processedAt timestamp appended.
func (e Envelope) Document() (json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(e.RawPayload, &doc); err != nil {
		return nil, fmt.Errorf("decode raw payload: %w", err)
	}

	ts, err := json.Marshal(e.ProcessedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("encode processedAt: %w", err)
	}
	doc["processedAt"] = ts

	return json.Marshal(doc)
}

// StoredOrder is an order record read back from the store. RecordID is the
// surrogate storage key, independent of the platform-native id so that two
// platforms reusing the same external id never collide.
type StoredOrder struct {
	RecordID        int64           `json:"record_id"`
	Platform        Platform        `json:"platform"`
	ExternalOrderID string          `json:"external_order_id"`
	OrderData       json.RawMessage `json:"order_data"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
