package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик Prometheus сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingsCreated   *prometheus.CounterVec
	BookingsRejected  *prometheus.CounterVec
	SlotQueries       *prometheus.CounterVec
	MasterAssignments *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре (его отдает promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors.",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections.",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections currently in use.",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections.",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created by assignment kind and initial status.",
			ConstLabels: constLabels,
		}, []string{"assignment", "status"}),
		BookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_rejected_total",
			Help:        "Booking attempts rejected by reason.",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		SlotQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_queries_total",
			Help:        "Available slot queries by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		MasterAssignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "master_assignments_total",
			Help:        "Round-robin master assignments by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingsRejected,
		m.SlotQueries,
		m.MasterAssignments,
	)

	return m
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность и результат запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// IncBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingCreated(assignment, status string) {
	m.BookingsCreated.WithLabelValues(assignment, status).Inc()
}

// IncBookingRejected увеличивает счетчик отклоненных попыток бронирования
func (m *Metrics) IncBookingRejected(reason string) {
	m.BookingsRejected.WithLabelValues(reason).Inc()
}

// IncSlotQuery увеличивает счетчик запросов слотов по исходу
func (m *Metrics) IncSlotQuery(outcome string) {
	m.SlotQueries.WithLabelValues(outcome).Inc()
}

// IncMasterAssignment увеличивает счетчик назначений мастера
func (m *Metrics) IncMasterAssignment(result string) {
	m.MasterAssignments.WithLabelValues(result).Inc()
}
