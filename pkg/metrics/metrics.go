package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ForwardResultSent     = "sent"
	ForwardResultFailed   = "failed"
	ForwardResultRejected = "rejected" // Очередь переполнена или остановлена
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	UpdatesTotal        *prometheus.CounterVec
	ForwardsTotal       *prometheus.CounterVec
	MonitorRunning      prometheus.Gauge
}

// New создаёт метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создаёт метрики в указанном реестре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	namespace := strings.ReplaceAll(serviceName, "-", "_")

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		UpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Telegram updates handled by the dispatcher, by kind",
		}, []string{"kind"}),
		ForwardsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forwards_total",
			Help:      "Forwarded messages, by result",
		}, []string{"result"}),
		MonitorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "monitor_running",
			Help:      "1 if monitoring is running",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.UpdatesTotal,
		m.ForwardsTotal,
		m.MonitorRunning,
	)

	return m
}

// ObserveHTTPRequest учитывает HTTP-запрос; path - шаблон маршрута, а не фактический URL
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncUpdate учитывает обработанное обновление
func (m *Metrics) IncUpdate(kind string) {
	m.UpdatesTotal.WithLabelValues(kind).Inc()
}

// IncForward учитывает результат пересылки
func (m *Metrics) IncForward(result string) {
	m.ForwardsTotal.WithLabelValues(result).Inc()
}

// SetRunning выставляет gauge состояния мониторинга
func (m *Metrics) SetRunning(running bool) {
	if running {
		m.MonitorRunning.Set(1)
		return
	}
	m.MonitorRunning.Set(0)
}

// Nop реализация без сбора метрик, когда они отключены в конфиге
type Nop struct{}

func (Nop) IncUpdate(string)  {}
func (Nop) IncForward(string) {}
func (Nop) SetRunning(bool)   {}

func (Nop) ObserveHTTPRequest(string, string, int, time.Duration) {}

// Collector общий интерфейс Metrics и Nop
type Collector interface {
	IncUpdate(kind string)
	IncForward(result string)
	SetRunning(running bool)
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

var (
	_ Collector = (*Metrics)(nil)
	_ Collector = Nop{}
)
