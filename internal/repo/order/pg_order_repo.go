package order_repo

import (
	"context"
	"errors"
	"fmt"

	"orderhub/internal/domain/order"
	"orderhub/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// PgOrderRepo is the Postgres-backed order store.
type PgOrderRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgOrderRepo(pg *postgres.Postgres) order.Store {
	return &PgOrderRepo{
		pg:   pg,
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

// Save inserts the envelope as a new order row and returns the surrogate
// record id. The UNIQUE (platform, external_id) constraint is the correctness
// backstop under concurrent duplicate delivery: the losing insert surfaces as
// order.ErrAlreadyExists.
func (r *repo) Save(ctx context.Context, env order.Envelope) (int64, error) {
	doc, err := env.Document()
	if err != nil {
		return 0, fmt.Errorf("render order document: %w", err)
	}

	query, args, err := r.builder.Insert("orders").
		Columns("platform", "external_id", "order_data", "status").
		Values(env.Platform, env.ExternalOrderID, doc, env.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert query: %w", err)
	}

	var recordID int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&recordID); err != nil {
		if postgres.IsPgErrorUniqueViolation(err) {
			return 0, order.ErrAlreadyExists
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}

	return recordID, nil
}

// GetByID returns the stored order for a record id.
func (r *repo) GetByID(ctx context.Context, recordID int64) (order.StoredOrder, error) {
	query, args, err := r.builder.
		Select("id", "platform", "external_id", "order_data", "status", "created_at").
		From("orders").
		Where(squirrel.Eq{"id": recordID}).
		ToSql()
	if err != nil {
		return order.StoredOrder{}, fmt.Errorf("build select query: %w", err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	stored, err := parseOrderRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return order.StoredOrder{}, order.ErrNotFound
	}
	if err != nil {
		return order.StoredOrder{}, fmt.Errorf("query order: %w", err)
	}

	return stored, nil
}
