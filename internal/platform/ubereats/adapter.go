// Package ubereats defines the Uber Eats wire schema and its normalization
// into the canonical order envelope.
package ubereats

import (
	"encoding/json"
	"fmt"

	"orderhub/internal/domain/order"

	"github.com/go-playground/validator/v10"
)

// Order is the Uber Eats order document shape, a subset of the payload the
// platform serves from resource_href. Validation is deliberately shallow:
// presence of id and current_state is the whole contract.
type Order struct {
	ID                string `json:"id" validate:"required"`
	DisplayID         string `json:"display_id"`
	ExternalID        string `json:"external_id"`
	CurrentState      string `json:"current_state" validate:"required"`
	Status            string `json:"status"`
	PreparationStatus string `json:"preparation_status"`
	OrderingPlatform  string `json:"ordering_platform"`
	FulfillmentType   string `json:"fulfillment_type"`
	Store             Store  `json:"store"`
	CreatedTime       string `json:"created_time"`
}

type Store struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Adapter struct {
	validate *validator.Validate
}

func NewAdapter() *Adapter {
	return &Adapter{validate: validator.New()}
}

func (a *Adapter) Platform() order.Platform {
	return order.PlatformUberEats
}

// Normalize validates the raw Uber Eats order document and wraps it into the
// canonical envelope keyed by the Uber Eats order id.
func (a *Adapter) Normalize(raw json.RawMessage) (order.Envelope, error) {
	var o Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return order.Envelope{}, fmt.Errorf("%w: Invalid Uber Eats order structure: %v", order.ErrInvalidOrder, err)
	}

	if err := a.validate.Struct(o); err != nil {
		return order.Envelope{}, fmt.Errorf("%w: Invalid Uber Eats order structure: missing id or state", order.ErrInvalidOrder)
	}

	return order.NewEnvelope(order.PlatformUberEats, o.ID, raw)
}
