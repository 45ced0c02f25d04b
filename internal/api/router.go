package api

import (
	"orderhub/internal/api/handlers"
	"orderhub/pkg/health"
	"orderhub/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	webhook        *handlers.WebhookHandler
	order          *handlers.OrderHandler
	healthRegistry *health.Registry
}

func NewRouter(
	webhook *handlers.WebhookHandler,
	order *handlers.OrderHandler,
	healthRegistry *health.Registry,
) *Router {
	return &Router{
		webhook:        webhook,
		order:          order,
		healthRegistry: healthRegistry,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Health checks (Kubernetes-style)
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	// Prometheus metrics
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Inbound platform webhooks
	engine.POST("/webhook/uber-eats", r.webhook.UberEats)
	engine.POST("/webhook/rappi", r.webhook.Rappi)
	engine.POST("/webhook/didi-food", r.webhook.DidiFood)

	// Reads
	engine.GET("/orders/:record_id", r.order.Get)
}
