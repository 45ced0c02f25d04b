// Package pipeline orchestrates webhook ingestion: platform dispatch, the
// Uber Eats token exchange and order fetch, adapter normalization and the
// idempotent store write.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"orderhub/internal/domain/order"
	"orderhub/internal/external/ubereats"
	"orderhub/internal/messaging"
	platform "orderhub/internal/platform/ubereats"
	"orderhub/pkg/logger"
)

//go:generate mockgen -source pipeline.go -destination mock_pipeline.go -package pipeline

// Adapter validates a platform-native order document and normalizes it into
// the canonical envelope.
type Adapter interface {
	Platform() order.Platform
	Normalize(raw json.RawMessage) (order.Envelope, error)
}

// CredentialBroker acquires a fresh bearer token for the order fetch.
type CredentialBroker interface {
	Token(ctx context.Context) (ubereats.Token, error)
}

// OrderFetcher retrieves the full order document from a resource reference.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, resourceHref string, token ubereats.Token) (json.RawMessage, error)
}

// Outcome tags the result of a processed webhook. Duplicate delivery is an
// expected outcome, not a failure.
type Outcome string

const (
	OutcomeStored    Outcome = "stored"
	OutcomeDuplicate Outcome = "duplicate"
)

// Receipt reports what a webhook invocation did.
type Receipt struct {
	Outcome  Outcome
	RecordID int64
	Platform order.Platform
}

// Adapters bundles the per-platform schema adapters handed to the pipeline.
type Adapters struct {
	UberEats Adapter
	Rappi    Adapter
	DidiFood Adapter
}

// Pipeline wires the ingestion components together. All collaborators are
// injected so each can be substituted in tests.
type Pipeline struct {
	store     order.Store
	broker    CredentialBroker
	fetcher   OrderFetcher
	adapters  Adapters
	publisher messaging.Publisher // optional
	audit     order.AuditSink     // optional
	l         *logger.Logger
}

func New(
	store order.Store,
	broker CredentialBroker,
	fetcher OrderFetcher,
	adapters Adapters,
	publisher messaging.Publisher,
	audit order.AuditSink,
	l *logger.Logger,
) *Pipeline {
	return &Pipeline{
		store:     store,
		broker:    broker,
		fetcher:   fetcher,
		adapters:  adapters,
		publisher: publisher,
		audit:     audit,
		l:         l,
	}
}

// HandleUberEats processes an Uber Eats event envelope: token exchange, order
// fetch from resource_href, then the shared normalize-and-store path.
func (p *Pipeline) HandleUberEats(ctx context.Context, body []byte) (Receipt, error) {
	event, err := platform.ParseWebhookEvent(body)
	if err != nil {
		return Receipt{}, err
	}

	p.l.InfoCtx(ctx, "Uber Eats webhook received: event_type=%s event_id=%s", event.EventType, event.EventID)

	token, err := p.broker.Token(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("acquire token: %w", err)
	}

	raw, err := p.fetcher.FetchOrder(ctx, event.ResourceHref, token)
	if err != nil {
		return Receipt{}, fmt.Errorf("fetch order: %w", err)
	}

	return p.ingest(ctx, p.adapters.UberEats, raw)
}

// HandleRappi processes a Rappi webhook; the body is the order document.
func (p *Pipeline) HandleRappi(ctx context.Context, body []byte) (Receipt, error) {
	return p.ingest(ctx, p.adapters.Rappi, body)
}

// HandleDidiFood processes a Didi Food webhook; the body is the order document.
func (p *Pipeline) HandleDidiFood(ctx context.Context, body []byte) (Receipt, error) {
	return p.ingest(ctx, p.adapters.DidiFood, body)
}

func (p *Pipeline) ingest(ctx context.Context, adapter Adapter, raw json.RawMessage) (Receipt, error) {
	env, err := adapter.Normalize(raw)
	if err != nil {
		return Receipt{}, err
	}

	recordID, err := p.store.Save(ctx, env)
	if errors.Is(err, order.ErrAlreadyExists) {
		// Concurrent or replayed delivery lost the insert race; the winning
		// row is already in place, so this is a benign idempotent outcome.
		p.l.InfoCtx(ctx, "Duplicate order delivery: platform=%s external_order_id=%s",
			env.Platform, env.ExternalOrderID)
		return Receipt{Outcome: OutcomeDuplicate, Platform: env.Platform}, nil
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("save order: %w", err)
	}

	p.l.InfoCtx(ctx, "Order stored: platform=%s external_order_id=%s record_id=%d",
		env.Platform, env.ExternalOrderID, recordID)

	p.notifyDownstream(ctx, recordID, env)

	return Receipt{Outcome: OutcomeStored, RecordID: recordID, Platform: env.Platform}, nil
}

// notifyDownstream publishes and indexes the stored envelope. Both sinks are
// best-effort: the order is already durable, so sink failures are logged and
// the webhook still succeeds.
func (p *Pipeline) notifyDownstream(ctx context.Context, recordID int64, env order.Envelope) {
	if p.publisher != nil {
		key := fmt.Sprintf("%s:%s", env.Platform, env.ExternalOrderID)
		msg, err := messaging.NewEnvelope(key, messaging.TypeOrderReceived, env)
		if err == nil {
			err = p.publisher.Publish(ctx, msg)
		}
		if err != nil {
			p.l.ErrorCtx(ctx, "Publish stored order failed: key=%s error=%v", key, err)
		}
	}

	if p.audit != nil {
		if err := p.audit.Index(ctx, recordID, env); err != nil {
			p.l.ErrorCtx(ctx, "Audit index failed: record_id=%d error=%v", recordID, err)
		}
	}
}
