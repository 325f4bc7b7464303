package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Domain collectors follow the Metric conventions from metrics.go so they
// land in the same registry and subsystem as the HTTP metrics.

var watcherOutcomes = &Metric{
	ID:          "watcherOutcomes",
	Name:        "watcher_outcomes_total",
	Description: "Terminal payment outcomes decided by the confirmation watcher, partitioned by outcome.",
	Type:        "counter_vec",
	Args:        []string{"outcome"},
}

var watcherPollErrors = &Metric{
	ID:          "watcherPollErrors",
	Name:        "watcher_poll_errors_total",
	Description: "Chain lookups that failed after retries during watcher cycles.",
	Type:        "counter",
}

var watcherAbandoned = &Metric{
	ID:          "watcherAbandoned",
	Name:        "watcher_abandoned_total",
	Description: "Payments dropped from watch after exhausting attempts on infrastructure errors.",
	Type:        "counter",
}

var webhookDeliveries = &Metric{
	ID:          "webhookDeliveries",
	Name:        "webhook_deliveries_total",
	Description: "Webhook delivery attempts, partitioned by result.",
	Type:        "counter_vec",
	Args:        []string{"result"},
}

var webhookQueueDepth = &Metric{
	ID:          "webhookQueueDepth",
	Name:        "webhook_queue_depth",
	Description: "Deliveries waiting in the dispatch queue.",
	Type:        "gauge",
}

var domainMetrics = []*Metric{
	watcherOutcomes,
	watcherPollErrors,
	watcherAbandoned,
	webhookDeliveries,
	webhookQueueDepth,
}

// RegisterDomain instantiates and registers the domain collectors under the
// given subsystem. The recorder functions below no-op until it runs, so unit
// tests never need a registry.
func RegisterDomain(subsystem string, logger Logger) {
	if logger == nil {
		logger = newDefaultLogger()
	}
	for _, def := range domainMetrics {
		if def.MetricCollector != nil {
			continue
		}
		m := NewMetric(def, subsystem)
		if err := prometheus.Register(m); err != nil {
			logger.Errorf("%s could not be registered in Prometheus, err=%v", def.Name, err)
			continue
		}
		def.MetricCollector = m
	}
}

// WatcherOutcome records a watcher-decided outcome: "confirmed", "failed",
// "expired" or "timeout".
func WatcherOutcome(outcome string) {
	if c, ok := watcherOutcomes.MetricCollector.(*prometheus.CounterVec); ok {
		c.WithLabelValues(outcome).Inc()
	}
}

func WatcherPollError() {
	if c, ok := watcherPollErrors.MetricCollector.(prometheus.Counter); ok {
		c.Inc()
	}
}

func WatcherAbandoned() {
	if c, ok := watcherAbandoned.MetricCollector.(prometheus.Counter); ok {
		c.Inc()
	}
}

// WebhookDelivery records one delivery attempt result: "delivered", "retry"
// or "failed".
func WebhookDelivery(result string) {
	if c, ok := webhookDeliveries.MetricCollector.(*prometheus.CounterVec); ok {
		c.WithLabelValues(result).Inc()
	}
}

func SetWebhookQueueDepth(n int) {
	if g, ok := webhookQueueDepth.MetricCollector.(prometheus.Gauge); ok {
		g.Set(float64(n))
	}
}
