package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	TxRetriesTotal     *prometheus.CounterVec

	// Предметная область
	SweepRecordsTotal *prometheus.CounterVec
	LowStockTotal     *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),
		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),
		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),
		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),
		TxRetriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Serializable transactions retried after a conflict",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		SweepRecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "sweep_records_total",
			Help:        "Records processed by lifecycle sweeps",
			ConstLabels: constLabels,
		}, []string{"sweep", "outcome"}),
		LowStockTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "stock_low_total",
			Help:        "Variant stock crossings below the low-stock threshold",
			ConstLabels: constLabels,
		}, []string{"product_id"}),
	}
}

// ObserveSweep увеличивает счетчики записей sweep
func (m *Metrics) ObserveSweep(sweep string, updated, failed int) {
	if m == nil {
		return
	}
	m.SweepRecordsTotal.WithLabelValues(sweep, "updated").Add(float64(updated))
	m.SweepRecordsTotal.WithLabelValues(sweep, "failed").Add(float64(failed))
}

// ObserveLowStock фиксирует пересечение порога остатка
func (m *Metrics) ObserveLowStock(productID string) {
	if m == nil {
		return
	}
	m.LowStockTotal.WithLabelValues(productID).Inc()
}

// ObserveTxRetry фиксирует повтор транзакции
func (m *Metrics) ObserveTxRetry(reason string) {
	if m == nil {
		return
	}
	m.TxRetriesTotal.WithLabelValues(reason).Inc()
}
