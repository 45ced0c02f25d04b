package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlatform(t *testing.T) {
	t.Parallel()

	for _, p := range AvailablePlatforms {
		got, err := NewPlatform(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := NewPlatform("postmates")
	assert.ErrorContains(t, err, "unknown platform")
}

func TestPlatform_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Uber Eats", PlatformUberEats.Label())
	assert.Equal(t, "Rappi", PlatformRappi.Label())
	assert.Equal(t, "Didi Food", PlatformDidiFood.Label())
}

func TestNewEnvelope(t *testing.T) {
	t.Parallel()

	t.Run("stamps processing time and initial status", func(t *testing.T) {
		env, err := NewEnvelope(PlatformRappi, "rappi-55", json.RawMessage(`{"code":"rappi-55"}`))

		require.NoError(t, err)
		assert.Equal(t, StatusReceived, env.Status)
		assert.WithinDuration(t, time.Now().UTC(), env.ProcessedAt, time.Second)
	})

	t.Run("rejects an empty external order id", func(t *testing.T) {
		_, err := NewEnvelope(PlatformRappi, "", json.RawMessage(`{}`))

		assert.ErrorIs(t, err, ErrInvalidOrder)
	})
}

func TestEnvelope_Document(t *testing.T) {
	t.Parallel()

	t.Run("appends processedAt to the raw payload", func(t *testing.T) {
		env, err := NewEnvelope(PlatformUberEats, "uber-100", json.RawMessage(`{"id":"uber-100","current_state":"CREATED"}`))
		require.NoError(t, err)

		doc, err := env.Document()
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(doc, &decoded))
		assert.Equal(t, "uber-100", decoded["id"])
		assert.Equal(t, "CREATED", decoded["current_state"])

		processedAt, ok := decoded["processedAt"].(string)
		require.True(t, ok, "processedAt must be a string timestamp")
		_, err = time.Parse(time.RFC3339, processedAt)
		assert.NoError(t, err)
	})

	t.Run("fails on a non-object payload", func(t *testing.T) {
		env := Envelope{RawPayload: json.RawMessage(`[1,2,3]`), ProcessedAt: time.Now()}

		_, err := env.Document()

		assert.Error(t, err)
	})
}
