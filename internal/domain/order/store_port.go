package order

import "context"

//go:generate mockgen -source store_port.go -destination mock_store_port.go -package order

// Store persists canonical order envelopes. Save enforces at-most-one record
// per (platform, external order id): a duplicate insert returns
// ErrAlreadyExists, never a second row and never a silent overwrite.
type Store interface {
	Save(ctx context.Context, env Envelope) (int64, error)
	GetByID(ctx context.Context, recordID int64) (StoredOrder, error)
}
