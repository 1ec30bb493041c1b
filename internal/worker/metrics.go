package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes update-pass counters and timing for Prometheus.
type Metrics struct {
	offerUpdates  *prometheus.CounterVec
	cycleDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		offerUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricewatch",
			Name:      "offer_updates_total",
			Help:      "Offer update outcomes per pass, labeled by result.",
		}, []string{"result"}),
		cycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricewatch",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of one full update pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

func (m *Metrics) Observe(stats Stats, duration time.Duration) {
	m.offerUpdates.WithLabelValues("success").Add(float64(stats.Success))
	m.offerUpdates.WithLabelValues("price_not_found").Add(float64(stats.PriceNotFound))
	m.offerUpdates.WithLabelValues("redirected").Add(float64(stats.Redirected))
	m.offerUpdates.WithLabelValues("other_error").Add(float64(stats.OtherError))
	m.offerUpdates.WithLabelValues("page_not_supported").Add(float64(stats.PageNotSupported))
	m.offerUpdates.WithLabelValues("skipped").Add(float64(stats.Skipped))

	m.cycleDuration.Observe(duration.Seconds())
}
