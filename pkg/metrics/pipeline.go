package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records publication pipeline and public traffic counters.
type PipelineMetrics struct {
	publishDuration *prometheus.HistogramVec
	published       prometheus.Counter
	fallbacks       prometheus.Counter
	views           prometheus.Counter
	bookings        prometheus.Counter
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	publishDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "publish_duration_seconds",
		Help:    "Duration of store publications in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stores_published_total",
		Help: "Stores published through the pipeline.",
	})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "generation_fallback_total",
		Help: "Content generations served from the fallback template.",
	})
	views := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "store_views_total",
		Help: "Public store page views recorded.",
	})
	bookings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Booking requests accepted.",
	})
	reg.MustRegister(publishDuration, published, fallbacks, views, bookings)
	return &PipelineMetrics{
		publishDuration: publishDuration,
		published:       published,
		fallbacks:       fallbacks,
		views:           views,
		bookings:        bookings,
	}
}

// ObservePublish records the duration and outcome of one publish attempt.
func (p *PipelineMetrics) ObservePublish(outcome string, duration time.Duration) {
	if p == nil || p.publishDuration == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	p.publishDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// IncPublished increments the published-store counter.
func (p *PipelineMetrics) IncPublished() {
	if p == nil || p.published == nil {
		return
	}
	p.published.Inc()
}

// IncFallback increments the generation-fallback counter.
func (p *PipelineMetrics) IncFallback() {
	if p == nil || p.fallbacks == nil {
		return
	}
	p.fallbacks.Inc()
}

// IncView increments the public-view counter.
func (p *PipelineMetrics) IncView() {
	if p == nil || p.views == nil {
		return
	}
	p.views.Inc()
}

// IncBooking increments the accepted-booking counter.
func (p *PipelineMetrics) IncBooking() {
	if p == nil || p.bookings == nil {
		return
	}
	p.bookings.Inc()
}
