package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик приложения
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	apiRequestsTotal    *prometheus.CounterVec
	apiRequestDuration  *prometheus.HistogramVec
	submissionsTotal    *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Количество обработанных HTTP запросов локального API",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Длительность обработки HTTP запросов локального API",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		apiRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "remote_api_requests_total",
			Help:        "Количество запросов к удаленному API",
			ConstLabels: constLabels,
		}, []string{"method", "endpoint", "status"}),
		apiRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "remote_api_request_duration_seconds",
			Help:        "Длительность запросов к удаленному API",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "task_form_submissions_total",
			Help:        "Отправки формы задачи по результату",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.apiRequestsTotal,
		m.apiRequestDuration,
		m.submissionsTotal,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный входящий запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveAPIRequest фиксирует запрос к удаленному API
// status = 0 означает транспортную ошибку
func (m *Metrics) ObserveAPIRequest(method, endpoint string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.apiRequestsTotal.WithLabelValues(method, endpoint, label).Inc()
	m.apiRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// ObserveSubmission фиксирует результат отправки формы
func (m *Metrics) ObserveSubmission(outcome string) {
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}
