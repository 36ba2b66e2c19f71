// Package metrics exposes the dispatch engine counters as Prometheus
// metrics. The engine keeps plain atomic counters; this collector reads
// them on scrape, so the emission path carries no metrics overhead.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lantern/internal/dispatch"
)

const namespace = "lantern"

// Collector adapts dispatch.Engine counters to the Prometheus model.
type Collector struct {
	engine       *dispatch.Engine
	delivered    *prometheus.Desc
	dropped      *prometheus.Desc
	lockTimeouts *prometheus.Desc
}

// NewCollector builds a collector over engine.
func NewCollector(engine *dispatch.Engine) *Collector {
	return &Collector{
		engine: engine,
		delivered: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "dispatch", "delivered_total"),
			"Subscriber invocations across all dispatch calls.",
			nil, nil,
		),
		dropped: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "dispatch", "dropped_total"),
			"Messages dropped without delivery.",
			nil, nil,
		),
		lockTimeouts: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "dispatch", "lock_timeouts_total"),
			"Dispatch lock acquisitions that timed out.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.delivered
	ch <- c.dropped
	ch <- c.lockTimeouts
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.engine.Stats()
	ch <- prometheus.MustNewConstMetric(c.delivered, prometheus.CounterValue, float64(stats.Delivered))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(stats.Dropped))
	ch <- prometheus.MustNewConstMetric(c.lockTimeouts, prometheus.CounterValue, float64(stats.LockTimeouts))
}

// Handler returns an HTTP handler serving the engine metrics.
func Handler(engine *dispatch.Engine) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(engine))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
