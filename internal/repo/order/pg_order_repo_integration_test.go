//go:build integration
// +build integration

package order_repo_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"orderhub/internal/domain/order"
	order_repo "orderhub/internal/repo/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnvelope(t *testing.T, platform order.Platform, externalID string) order.Envelope {
	t.Helper()

	raw := json.RawMessage(`{"id":"` + externalID + `","current_state":"CREATED"}`)
	env, err := order.NewEnvelope(platform, externalID, raw)
	require.NoError(t, err)
	return env
}

func TestSaveAndGetByIDIntegration(t *testing.T) {
	ctx := context.Background()
	store := order_repo.NewPgOrderRepo(pool)

	env := newEnvelope(t, order.PlatformUberEats, "it-uber-1")

	recordID, err := store.Save(ctx, env)
	require.NoError(t, err)
	require.Positive(t, recordID)

	stored, err := store.GetByID(ctx, recordID)
	require.NoError(t, err)

	assert.Equal(t, recordID, stored.RecordID)
	assert.Equal(t, order.PlatformUberEats, stored.Platform)
	assert.Equal(t, "it-uber-1", stored.ExternalOrderID)
	assert.Equal(t, order.StatusReceived, stored.Status)
	assert.False(t, stored.CreatedAt.IsZero())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stored.OrderData, &doc))
	assert.Equal(t, "it-uber-1", doc["id"])
	assert.Contains(t, doc, "processedAt")
}

func TestDuplicateSaveIntegration(t *testing.T) {
	ctx := context.Background()
	store := order_repo.NewPgOrderRepo(pool)

	env := newEnvelope(t, order.PlatformRappi, "it-rappi-1")

	firstID, err := store.Save(ctx, env)
	require.NoError(t, err)

	_, err = store.Save(ctx, env)
	assert.ErrorIs(t, err, order.ErrAlreadyExists)

	stored, err := store.GetByID(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, "it-rappi-1", stored.ExternalOrderID)
}

func TestSameExternalIDAcrossPlatformsIntegration(t *testing.T) {
	ctx := context.Background()
	store := order_repo.NewPgOrderRepo(pool)

	uberID, err := store.Save(ctx, newEnvelope(t, order.PlatformUberEats, "shared-123"))
	require.NoError(t, err)

	didiID, err := store.Save(ctx, newEnvelope(t, order.PlatformDidiFood, "shared-123"))
	require.NoError(t, err)

	assert.NotEqual(t, uberID, didiID)
}

func TestConcurrentDuplicateSaveIntegration(t *testing.T) {
	ctx := context.Background()
	store := order_repo.NewPgOrderRepo(pool)

	const workers = 10
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env := newEnvelope(t, order.PlatformDidiFood, "it-didi-race")
			_, err := store.Save(ctx, env)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var stored, duplicates int
	for err := range results {
		switch {
		case err == nil:
			stored++
		case errors.Is(err, order.ErrAlreadyExists):
			duplicates++
		default:
			t.Fatalf("unexpected save error: %v", err)
		}
	}

	// Exactly one insert wins; every other worker sees the duplicate.
	assert.Equal(t, 1, stored)
	assert.Equal(t, workers-1, duplicates)
}
