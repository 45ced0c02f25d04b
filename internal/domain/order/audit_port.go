package order

import "context"

// AuditSink indexes stored envelopes into a search backend for audit and
// replay queries. Indexing is best-effort: a sink failure never fails the
// ingestion pipeline.
type AuditSink interface {
	Index(ctx context.Context, recordID int64, env Envelope) error
}
