// Package didifood defines the Didi Food wire schema and its normalization
// into the canonical order envelope.
package didifood

import (
	"encoding/json"
	"fmt"

	"orderhub/internal/domain/order"

	"github.com/go-playground/validator/v10"
)

// Order is the Didi Food order document shape. The webhook body is the order
// itself; orderNumber and merchantId are the only required fields.
type Order struct {
	OrderNumber string  `json:"orderNumber" validate:"required"`
	MerchantID  string  `json:"merchantId" validate:"required"`
	OrderStatus string  `json:"orderStatus"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
	CreateTime  int64   `json:"createTime"`
	Items       []Item  `json:"items"`
}

type Item struct {
	ItemID   string  `json:"itemId"`
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
	return order.PlatformDidiFood
}

// Normalize validates the raw Didi Food order and wraps it into the canonical
// envelope keyed by the Didi Food order number.
func (a *Adapter) Normalize(raw json.RawMessage) (order.Envelope, error) {
	var o Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return order.Envelope{}, fmt.Errorf("%w: Invalid Didi Food order structure: %v", order.ErrInvalidOrder, err)
	}

	if err := a.validate.Struct(o); err != nil {
		return order.Envelope{}, fmt.Errorf("%w: Invalid Didi Food order structure: missing orderNumber or merchantId", order.ErrInvalidOrder)
	}

	return order.NewEnvelope(order.PlatformDidiFood, o.OrderNumber, raw)
}
