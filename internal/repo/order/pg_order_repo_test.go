package order_repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"orderhub/internal/domain/order"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &repo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, mock
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	env, err := order.NewEnvelope(order.PlatformRappi, "rappi-55", json.RawMessage(`{"code":"rappi-55","total":120.5}`))
	require.NoError(t, err)

	doc, err := env.Document()
	require.NoError(t, err)

	t.Run("inserts the order document and returns the record id", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`INSERT INTO orders \(platform,external_id,order_data,status\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id`).
			WithArgs(env.Platform, env.ExternalOrderID, doc, env.Status).
			WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(42)))

		recordID, err := repo.Save(ctx, env)

		require.NoError(t, err)
		assert.Equal(t, int64(42), recordID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrAlreadyExists", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(env.Platform, env.ExternalOrderID, doc, env.Status).
			WillReturnError(&pgconn.PgError{
				Code:           "23505",
				ConstraintName: "orders_platform_external_id_key",
			})

		_, err := repo.Save(ctx, env)

		assert.ErrorIs(t, err, order.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other database errors are wrapped, not masked", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(env.Platform, env.ExternalOrderID, doc, env.Status).
			WillReturnError(&pgconn.PgError{Code: "53300", Message: "too many connections"})

		_, err := repo.Save(ctx, env)

		require.Error(t, err)
		assert.NotErrorIs(t, err, order.ErrAlreadyExists)
		assert.Contains(t, err.Error(), "too many connections")
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored order", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		createdAt := time.Now()
		orderData := json.RawMessage(`{"code":"rappi-55","total":120.5,"processedAt":"2026-08-31T12:00:00Z"}`)

		rows := mock.NewRows([]string{"id", "platform", "external_id", "order_data", "status", "created_at"}).
			AddRow(int64(42), "rappi", "rappi-55", orderData, "received", createdAt)

		mock.ExpectQuery(`SELECT id, platform, external_id, order_data, status, created_at FROM orders WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(rows)

		stored, err := repo.GetByID(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), stored.RecordID)
		assert.Equal(t, order.PlatformRappi, stored.Platform)
		assert.Equal(t, "rappi-55", stored.ExternalOrderID)
		assert.Equal(t, order.StatusReceived, stored.Status)
		assert.JSONEq(t, string(orderData), string(stored.OrderData))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing record maps to ErrNotFound", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`SELECT id, platform, external_id, order_data, status, created_at FROM orders`).
			WithArgs(int64(99)).
			WillReturnRows(mock.NewRows([]string{"id", "platform", "external_id", "order_data", "status", "created_at"}))

		_, err := repo.GetByID(ctx, 99)

		assert.ErrorIs(t, err, order.ErrNotFound)
	})

	t.Run("unknown platform in a row is an error", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		rows := mock.NewRows([]string{"id", "platform", "external_id", "order_data", "status", "created_at"}).
			AddRow(int64(1), "postmates", "x-1", json.RawMessage(`{}`), "received", time.Now())

		mock.ExpectQuery(`SELECT id, platform, external_id, order_data, status, created_at FROM orders`).
			WithArgs(int64(1)).
			WillReturnRows(rows)

		_, err := repo.GetByID(ctx, 1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown platform")
	})
}
