package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса. У каждого экземпляра свой registry.
type Metrics struct {
	registry *prometheus.Registry
	service  string

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbOpenConns   *prometheus.GaugeVec
	dbInUse       *prometheus.GaugeVec
	dbIdle        *prometheus.GaugeVec
	dbWaitCount   *prometheus.GaugeVec
	dbQueryTiming *prometheus.HistogramVec

	bookingsCreated   *prometheus.CounterVec
	bookingRejections *prometheus.CounterVec
	availableSlots    *prometheus.HistogramVec
}

// New создает и регистрирует метрики для сервиса serviceName
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		service:  serviceName,

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Количество HTTP запросов.",
		}, []string{"service", "method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Длительность обработки HTTP запросов.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Открытые соединения с БД.",
		}, []string{"service"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Занятые соединения с БД.",
		}, []string{"service"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Свободные соединения с БД.",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Суммарное количество ожиданий соединения.",
		}, []string{"service"}),
		dbQueryTiming: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Длительность запросов к БД.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),

		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Созданные бронирования по каналу.",
		}, []string{"service", "channel"}),
		bookingRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_rejections_total",
			Help: "Отклоненные попытки бронирования по коду ошибки.",
		}, []string{"service", "code"}),
		availableSlots: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "available_slots_returned",
			Help:    "Количество слотов в ответе на запрос доступности.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 40},
		}, []string{"service"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.dbOpenConns, m.dbInUse, m.dbIdle, m.dbWaitCount, m.dbQueryTiming,
		m.bookingsCreated, m.bookingRejections, m.availableSlots,
	)

	return m
}

// Handler HTTP handler для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает registry (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(m.service, method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(m.service, method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveQuery(operation string, err error, d time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryTiming.WithLabelValues(m.service, operation, status).Observe(d.Seconds())
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	m.dbOpenConns.WithLabelValues(m.service).Set(float64(stats.OpenConnections))
	m.dbInUse.WithLabelValues(m.service).Set(float64(stats.InUse))
	m.dbIdle.WithLabelValues(m.service).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(m.service).Set(float64(stats.WaitCount))
}

func (m *Metrics) IncBookingCreated(channel string) {
	m.bookingsCreated.WithLabelValues(m.service, channel).Inc()
}

func (m *Metrics) IncBookingRejected(code string) {
	m.bookingRejections.WithLabelValues(m.service, code).Inc()
}

func (m *Metrics) ObserveAvailableSlots(count int) {
	m.availableSlots.WithLabelValues(m.service).Observe(float64(count))
}
