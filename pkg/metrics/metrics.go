package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Connection pool
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBWaitDuration     *prometheus.GaugeVec

	// Availability
	AvailabilityFetchTotal   *prometheus.CounterVec
	AvailabilityPersistTotal *prometheus.CounterVec
	AvailabilityCacheTotal   *prometheus.CounterVec
	CalendarSessionsActive   prometheus.Gauge

	// Inquiries
	InquiriesCreatedTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		DBWaitDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds",
			Help: "Total time blocked waiting for a new connection",
		}, []string{"service"}),

		AvailabilityFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_fetch_total",
			Help:        "Availability range fetches by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		AvailabilityPersistTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_persist_total",
			Help:        "Availability day overrides by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		AvailabilityCacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_total",
			Help:        "Availability range cache lookups",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		CalendarSessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "calendar_sessions_active",
			Help:        "Number of live calendar editing sessions",
			ConstLabels: constLabels,
		}),

		InquiriesCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "inquiries_created_total",
			Help:        "Inquiries created, by relay outcome",
			ConstLabels: constLabels,
		}, []string{"relay"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBWaitDuration,
		m.AvailabilityFetchTotal,
		m.AvailabilityPersistTotal,
		m.AvailabilityCacheTotal,
		m.CalendarSessionsActive,
		m.InquiriesCreatedTotal,
	)

	return m
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler HTTP handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
