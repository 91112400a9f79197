package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	FetchesTotal          *prometheus.CounterVec
	FetchDuration         *prometheus.HistogramVec
	URLsInQueue           prometheus.Gauge
	CyclesTotal           prometheus.Counter
	RelationshipsTotal    prometheus.Counter
	BodyRecordsSkipped    prometheus.Counter
	MissingKeywordRecords prometheus.Counter
}

// New registers the metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkrank_fetches_total",
				Help: "Total number of page fetches.",
			},
			[]string{"stage", "status"}, // stage: crawl, load; status: success, failure
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linkrank_fetch_duration_seconds",
				Help:    "Duration of page fetches.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"stage"},
		),
		URLsInQueue: factory.NewGauge(prometheus.GaugeOpts{
			Name: "linkrank_urls_in_queue",
			Help: "Current number of URLs in the crawl queue.",
		}),
		CyclesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "linkrank_cycles_total",
			Help: "Total number of crawl cycles run.",
		}),
		RelationshipsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "linkrank_relationships_total",
			Help: "Total number of link relationships recorded.",
		}),
		BodyRecordsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "linkrank_body_records_skipped_total",
			Help: "Body store records dropped because they did not match the record format.",
		}),
		MissingKeywordRecords: factory.NewCounter(prometheus.CounterOpts{
			Name: "linkrank_missing_keyword_records_total",
			Help: "Ranked terms that had no keyword record and defaulted to zero occurrences.",
		}),
	}
}

// ObserveFetch counts one page fetch of a stage and records its duration.
func (m *Metrics) ObserveFetch(stage string, ok bool, seconds float64) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "failure"
	}
	m.FetchesTotal.WithLabelValues(stage, status).Inc()
	m.FetchDuration.WithLabelValues(stage).Observe(seconds)
}

// SetQueueSize sets the number of URLs waiting in the crawl queue.
func (m *Metrics) SetQueueSize(n int) {
	if m == nil {
		return
	}
	m.URLsInQueue.Set(float64(n))
}

// IncCycles counts a completed crawl cycle.
func (m *Metrics) IncCycles() {
	if m == nil {
		return
	}
	m.CyclesTotal.Inc()
}

// AddRelationships adds the relationships recorded by one crawl.
func (m *Metrics) AddRelationships(n int) {
	if m == nil {
		return
	}
	m.RelationshipsTotal.Add(float64(n))
}

// AddSkippedRecords adds body store records dropped as malformed.
func (m *Metrics) AddSkippedRecords(n int) {
	if m == nil {
		return
	}
	m.BodyRecordsSkipped.Add(float64(n))
}

// AddMissingKeywordRecords adds ranked terms that had no keyword record.
func (m *Metrics) AddMissingKeywordRecords(n int) {
	if m == nil {
		return
	}
	m.MissingKeywordRecords.Add(float64(n))
}

// ObserveHTTPRequest counts one API request and records its duration.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}
