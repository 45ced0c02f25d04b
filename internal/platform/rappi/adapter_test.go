package rappi

import (
	"encoding/json"
	"testing"

	"orderhub/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Normalize(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter()

	t.Run("valid order becomes an envelope keyed by code", func(t *testing.T) {
		raw := json.RawMessage(`{
			"code": "rappi-55",
			"total": 120.50,
			"state": "created",
			"store": {"id": "store-2", "name": "Sushi Spot"},
			"items": [{"sku": "sku-1", "name": "Roll", "quantity": 2, "price": 60.25}]
		}`)

		env, err := adapter.Normalize(raw)

		require.NoError(t, err)
		assert.Equal(t, order.PlatformRappi, env.Platform)
		assert.Equal(t, "rappi-55", env.ExternalOrderID)
		assert.Equal(t, order.StatusReceived, env.Status)
		assert.JSONEq(t, string(raw), string(env.RawPayload))
	})

	t.Run("missing code is rejected", func(t *testing.T) {
		_, err := adapter.Normalize(json.RawMessage(`{"total": 120.50}`))

		require.ErrorIs(t, err, order.ErrInvalidOrder)
		assert.Contains(t, err.Error(), "Invalid Rappi order structure: missing code or total")
	})

	t.Run("missing total is rejected", func(t *testing.T) {
		_, err := adapter.Normalize(json.RawMessage(`{"code": "rappi-55"}`))

		require.ErrorIs(t, err, order.ErrInvalidOrder)
		assert.Contains(t, err.Error(), "missing code or total")
	})

	t.Run("zero total is rejected", func(t *testing.T) {
		_, err := adapter.Normalize(json.RawMessage(`{"code": "rappi-55", "total": 0}`))

		assert.ErrorIs(t, err, order.ErrInvalidOrder)
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		_, err := adapter.Normalize(json.RawMessage(`[1,2`))

		require.ErrorIs(t, err, order.ErrInvalidOrder)
		assert.Contains(t, err.Error(), "Invalid Rappi order structure")
	})
}
