package order_repo

import (
	"encoding/json"
	"fmt"
	"time"

	"orderhub/internal/domain/order"

	"github.com/jackc/pgx/v5"
)

type orderRow struct {
	ID         int64
	Platform   string
	ExternalID string
	OrderData  json.RawMessage
	Status     string
	CreatedAt  time.Time
}

func (m orderRow) toDomain() (order.StoredOrder, error) {
	platform, err := order.NewPlatform(m.Platform)
	if err != nil {
		return order.StoredOrder{}, fmt.Errorf("invalid platform in database: %w", err)
	}

	return order.StoredOrder{
		RecordID:        m.ID,
		Platform:        platform,
		ExternalOrderID: m.ExternalID,
		OrderData:       m.OrderData,
		Status:          order.Status(m.Status),
		CreatedAt:       m.CreatedAt,
	}, nil
}

func parseOrderRow(row pgx.Row) (order.StoredOrder, error) {
	var m orderRow

	err := row.Scan(&m.ID,
		&m.Platform,
		&m.ExternalID,
		&m.OrderData,
		&m.Status,
		&m.CreatedAt)
	if err != nil {
		return order.StoredOrder{}, err
	}

	return m.toDomain()
}
