package handlers

import (
	"context"
	"io"
	"net/http"

	"orderhub/internal/domain/order"
	"orderhub/internal/pipeline"
	"orderhub/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Ingestor is the pipeline surface the webhook handler needs.
type Ingestor interface {
	HandleUberEats(ctx context.Context, body []byte) (pipeline.Receipt, error)
	HandleRappi(ctx context.Context, body []byte) (pipeline.Receipt, error)
	HandleDidiFood(ctx context.Context, body []byte) (pipeline.Receipt, error)
}

// WebhookHandler exposes one POST route per platform. Platforms are always
// answered with a 200-class JSON body; pipeline failures are reported through
// the status field, not the HTTP status code.
type WebhookHandler struct {
	ingestor Ingestor
}

func NewWebhookHandler(ingestor Ingestor) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor}
}

type webhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	statusSuccess   = "success"
	statusDuplicate = "duplicate"
	statusError     = "error"
)

// UberEats handles POST /webhook/uber-eats.
func (h *WebhookHandler) UberEats(c *gin.Context) {
	h.process(c, order.PlatformUberEats, h.ingestor.HandleUberEats)
}

// Rappi handles POST /webhook/rappi.
func (h *WebhookHandler) Rappi(c *gin.Context) {
	h.process(c, order.PlatformRappi, h.ingestor.HandleRappi)
}

// DidiFood handles POST /webhook/didi-food.
func (h *WebhookHandler) DidiFood(c *gin.Context) {
	h.process(c, order.PlatformDidiFood, h.ingestor.HandleDidiFood)
}

func (h *WebhookHandler) process(
	c *gin.Context,
	platform order.Platform,
	handle func(ctx context.Context, body []byte) (pipeline.Receipt, error),
) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		metrics.WebhooksTotal.WithLabelValues(string(platform), statusError).Inc()
		c.JSON(http.StatusOK, webhookResponse{Status: statusError, Message: "read request body: " + err.Error()})
		return
	}

	receipt, err := handle(c.Request.Context(), body)
	if err != nil {
		metrics.WebhooksTotal.WithLabelValues(string(platform), statusError).Inc()
		c.JSON(http.StatusOK, webhookResponse{Status: statusError, Message: err.Error()})
		return
	}

	if receipt.Outcome == pipeline.OutcomeDuplicate {
		metrics.WebhooksTotal.WithLabelValues(string(platform), statusDuplicate).Inc()
		c.JSON(http.StatusOK, webhookResponse{
			Status:  statusDuplicate,
			Message: platform.Label() + " order already processed",
		})
		return
	}

	metrics.WebhooksTotal.WithLabelValues(string(platform), statusSuccess).Inc()
	c.JSON(http.StatusOK, webhookResponse{
		Status:  statusSuccess,
		Message: platform.Label() + " order processed",
	})
}
