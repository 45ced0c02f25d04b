package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhooksTotal counts processed webhooks per platform and outcome
// (stored, duplicate, error).
var WebhooksTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "orderhub",
		Subsystem: "webhook",
		Name:      "processed_total",
		Help:      "Total number of processed platform webhooks",
	},
	[]string{"platform", "outcome"},
)

func init() {
	Registry.MustRegister(WebhooksTotal)
}
