package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics holds the collectors of the auction service. A nil *Metrics records nothing.
type Metrics struct {
	RequestCount        *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	BidsPlaced          *prometheus.CounterVec
	BidsRejected        *prometheus.CounterVec
	SettlementsTotal    *prometheus.CounterVec
	CommissionCollected prometheus.Counter
	NotificationsTotal  *prometheus.CounterVec
	EventsPublished     *prometheus.CounterVec
	EventPublishLatency prometheus.Histogram
}

// New creates the collectors and registers them on registry
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		BidsPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_bids_placed_total",
				Help: "Accepted bids by outcome.",
			},
			[]string{"result"},
		),
		BidsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_bids_rejected_total",
				Help: "Rejected bids by reason.",
			},
			[]string{"reason"},
		),
		SettlementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_settlements_total",
				Help: "Settlement attempts by status.",
			},
			[]string{"status"},
		),
		CommissionCollected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "auction_commission_collected_total",
				Help: "Commission credited to the admin account.",
			},
		),
		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_notifications_total",
				Help: "Notification deliveries by status.",
			},
			[]string{"status"},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kafka_publish_total",
				Help: "Total Kafka publish attempts.",
			},
			[]string{"topic", "status"},
		),
		EventPublishLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kafka_publish_latency_seconds",
				Help:    "Kafka publish latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	registry.MustRegister(
		m.RequestCount, m.RequestDuration,
		m.BidsPlaced, m.BidsRejected,
		m.SettlementsTotal, m.CommissionCollected,
		m.NotificationsTotal,
		m.EventsPublished, m.EventPublishLatency,
	)
	return m
}

// NewRegistry returns a registry with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// Handler exposes registry over HTTP
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, path string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	code := http.StatusText(status)
	m.RequestCount.WithLabelValues(method, path, code).Inc()
	m.RequestDuration.WithLabelValues(method, path, code).Observe(latency.Seconds())
}

// IncBidPlaced counts an accepted bid, split by new and raised
func (m *Metrics) IncBidPlaced(created bool) {
	if m == nil {
		return
	}
	result := "updated"
	if created {
		result = "created"
	}
	m.BidsPlaced.WithLabelValues(result).Inc()
}

// IncBidRejected counts a refused bid by reason
func (m *Metrics) IncBidRejected(reason string) {
	if m == nil {
		return
	}
	m.BidsRejected.WithLabelValues(reason).Inc()
}

// IncSettlement counts a sale attempt by outcome
func (m *Metrics) IncSettlement(status string) {
	if m == nil {
		return
	}
	m.SettlementsTotal.WithLabelValues(status).Inc()
}

// AddCommission adds amount to the commission total
func (m *Metrics) AddCommission(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.CommissionCollected.Add(amount.InexactFloat64())
}

// IncNotification counts an email by delivery outcome
func (m *Metrics) IncNotification(status string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(status).Inc()
}

// ObservePublish records one event publish and its latency
func (m *Metrics) ObservePublish(topic string, err error, latency time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(topic, status).Inc()
	m.EventPublishLatency.Observe(latency.Seconds())
}
