// Package rappi defines the Rappi wire schema and its normalization into the
// canonical order envelope.
package rappi

import (
	"encoding/json"
	"fmt"

	"orderhub/internal/domain/order"

	"github.com/go-playground/validator/v10"
)

// Order is the Rappi order document shape. The webhook body is the order
// itself; code and total are the only required fields.
type Order struct {
	Code       string  `json:"code" validate:"required"`
	Total      float64 `json:"total" validate:"required"`
	State      string  `json:"state"`
	CreatedAt  string  `json:"createdAt"`
	Store      Store   `json:"store"`
	Items      []Item  `json:"items"`
	DeliveryID string  `json:"deliveryId"`
}

type Store struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Item struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Adapter struct {
	validate *validator.Validate
}

func NewAdapter() *Adapter {
	return &Adapter{validate: validator.New()}
}

func (a *Adapter) Platform() order.Platform {
	return order.PlatformRappi
}

// Normalize validates the raw Rappi order and wraps it into the canonical
// envelope keyed by the Rappi order code.
func (a *Adapter) Normalize(raw json.RawMessage) (order.Envelope, error) {
	var o Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return order.Envelope{}, fmt.Errorf("%w: Invalid Rappi order structure: %v", order.ErrInvalidOrder, err)
	}

	if err := a.validate.Struct(o); err != nil {
		return order.Envelope{}, fmt.Errorf("%w: Invalid Rappi order structure: missing code or total", order.ErrInvalidOrder)
	}

	return order.NewEnvelope(order.PlatformRappi, o.Code, raw)
}
