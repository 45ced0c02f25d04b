// Package opensearch implements the order audit sink on OpenSearch.
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"orderhub/internal/domain/order"

	"github.com/opensearch-project/opensearch-go"
)

var _ order.AuditSink = (*AuditSink)(nil)

// AuditSink indexes stored order envelopes for search.
type AuditSink struct {
	client *opensearch.Client
	index  string
}

func NewAuditSink(ctx context.Context, urls []string, index string) (*AuditSink, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	cfg := opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	}
	client, err := opensearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	sink := &AuditSink{client: client, index: index}

	// Ensure index exists with minimal mapping.
	if err := sink.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *AuditSink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil // already exists
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"record_id":         map[string]any{"type": "long"},
				"platform":          map[string]any{"type": "keyword"},
				"external_order_id": map[string]any{"type": "keyword"},
				"status":            map[string]any{"type": "keyword"},
				"processed_at":      map[string]any{"type": "date"},
				"order":             map[string]any{"type": "object", "enabled": true},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0,
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

// internal doc stored in OpenSearch
type auditDoc struct {
	RecordID        int64           `json:"record_id"`
	Platform        order.Platform  `json:"platform"`
	ExternalOrderID string          `json:"external_order_id"`
	Status          order.Status    `json:"status"`
	ProcessedAt     time.Time       `json:"processed_at"`
	Order           json.RawMessage `json:"order"`
}

// Index writes one envelope document; the OpenSearch document id is the
// storage record id, so re-indexing after a replay is an overwrite.
func (s *AuditSink) Index(ctx context.Context, recordID int64, env order.Envelope) error {
	doc := auditDoc{
		RecordID:        recordID,
		Platform:        env.Platform,
		ExternalOrderID: env.ExternalOrderID,
		Status:          env.Status,
		ProcessedAt:     env.ProcessedAt,
		Order:           env.RawPayload,
	}

	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal audit doc: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(buf),
		s.client.Index.WithDocumentID(strconv.FormatInt(recordID, 10)),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index audit doc: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index audit doc: %s", res.String())
	}
	return nil
}
