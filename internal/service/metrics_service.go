package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/elores-client/internal/session"
)

// MetricsSnapshot summarises the client's activity for the readiness
// endpoint.
type MetricsSnapshot struct {
	ExchangesTotal            uint64    `json:"exchanges_total"`
	ExchangeFailures          uint64    `json:"exchange_failures"`
	AverageExchangeDurationMs float64   `json:"average_exchange_duration_ms"`
	Connects                  uint64    `json:"connects"`
	Teardowns                 uint64    `json:"teardowns"`
	CacheHitRatio             float64   `json:"cache_hit_ratio"`
	RequestsTotal             uint64    `json:"requests_total"`
	Goroutines                int       `json:"goroutines"`
	GeneratedAt               time.Time `json:"generated_at"`
}

// MetricsService encapsulates Prometheus instrumentation of the session
// client, the gateway and the avatar cache.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	exchangeDuration *prometheus.HistogramVec
	exchangeTotal    *prometheus.CounterVec
	connectionEvents *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	cacheLatency     prometheus.Observer
	cacheWrite       prometheus.Observer
	cacheHitRatio    prometheus.Gauge
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter

	exchangeCount         uint64
	exchangeFailureCount  uint64
	exchangeDurationTotal uint64
	connectCount          uint64
	teardownCount         uint64
	cacheHitCount         uint64
	cacheMissCount        uint64
	requestCount          uint64
}

// NewMetricsService registers the Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	exchangeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "elores_exchange_duration_seconds",
		Help:    "Duration of request/response exchanges with the server",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})

	exchangeTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "elores_exchanges_total",
		Help: "Exchanges with the server by action and outcome",
	}, []string{"action", "outcome"})

	connectionEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "elores_connection_events_total",
		Help: "Server connection lifecycle events",
	}, []string{"event"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of gateway HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of gateway HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for avatar cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for avatar cache writes",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of avatar cache hits to total lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total avatar cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total avatar cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(exchangeDuration, exchangeTotal, connectionEvents, requestDuration, requestTotal,
		cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		exchangeDuration: exchangeDuration,
		exchangeTotal:    exchangeTotal,
		connectionEvents: connectionEvents,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		cacheLatency:     cacheLatency,
		cacheWrite:       cacheWrite,
		cacheHitRatio:    cacheHitRatio,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveExchange records one session exchange.
func (m *MetricsService) ObserveExchange(action string, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.exchangeTotal.WithLabelValues(action, outcome).Inc()
	if duration > 0 {
		m.exchangeDuration.WithLabelValues(action).Observe(duration.Seconds())
	}
	atomic.AddUint64(&m.exchangeCount, 1)
	atomic.AddUint64(&m.exchangeDurationTotal, uint64(duration.Nanoseconds()))
	if outcome != session.OutcomeSuccess {
		atomic.AddUint64(&m.exchangeFailureCount, 1)
	}
}

// ObserveConnection records a connection lifecycle event.
func (m *MetricsService) ObserveConnection(event string) {
	if m == nil {
		return
	}
	m.connectionEvents.WithLabelValues(event).Inc()
	switch event {
	case session.EventConnected:
		atomic.AddUint64(&m.connectCount, 1)
	case session.EventTornDown:
		atomic.AddUint64(&m.teardownCount, 1)
	}
}

// ObserveHTTPRequest records gateway request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// Snapshot returns aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	exchanges := atomic.LoadUint64(&m.exchangeCount)
	exchangeDuration := atomic.LoadUint64(&m.exchangeDurationTotal)
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)

	var avgExchangeMs float64
	if exchanges > 0 {
		avgExchangeMs = float64(exchangeDuration) / float64(exchanges) / float64(time.Millisecond)
	}

	var cacheRatio float64
	if total := hits + misses; total > 0 {
		cacheRatio = float64(hits) / float64(total)
	}

	return MetricsSnapshot{
		ExchangesTotal:            exchanges,
		ExchangeFailures:          atomic.LoadUint64(&m.exchangeFailureCount),
		AverageExchangeDurationMs: avgExchangeMs,
		Connects:                  atomic.LoadUint64(&m.connectCount),
		Teardowns:                 atomic.LoadUint64(&m.teardownCount),
		CacheHitRatio:             cacheRatio,
		RequestsTotal:             atomic.LoadUint64(&m.requestCount),
		Goroutines:                runtime.NumGoroutine(),
		GeneratedAt:               time.Now().UTC(),
	}
}
