package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remoteWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_remote_write_failures_total",
		Help: "Best-effort cart persistence calls that failed and were dropped",
	}, []string{"op"})

	enrichmentDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_enrichment_drops_total",
		Help: "Cart lines dropped from display because the catalog lookup failed",
	})

	cartPulls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_pulls_total",
		Help: "Remote cart pulls performed on login",
	})
)

// RemoteWriteFailure records a failed fire-and-forget persistence call.
func RemoteWriteFailure(op string) {
	remoteWriteFailures.WithLabelValues(op).Inc()
}

// EnrichmentDrop records a cart line silently removed from display.
func EnrichmentDrop() {
	enrichmentDrops.Inc()
}

// CartPull records a post-authentication remote cart pull.
func CartPull() {
	cartPulls.Inc()
}
