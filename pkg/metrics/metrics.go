package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics счётчики прогонов пайплайна. Nil-receiver безопасен, поэтому
// выключенные метрики передаются как nil без проверок на стороне вызывающего.
type Metrics struct {
	runsTotal    *prometheus.CounterVec
	runDuration  prometheus.Histogram
	spotsFound   prometheus.Gauge
	messagesSent prometheus.Counter
}

// New создает и регистрирует метрики сервиса в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "spotwatcher_runs_total",
			Help:        "Total pipeline runs by status.",
			ConstLabels: constLabels,
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "spotwatcher_run_duration_seconds",
			Help:        "End-to-end pipeline run duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),
		spotsFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "spotwatcher_spots_found",
			Help:        "Available spots found by the most recent run.",
			ConstLabels: constLabels,
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "spotwatcher_telegram_messages_sent_total",
			Help:        "Telegram notifications delivered.",
			ConstLabels: constLabels,
		}),
	}

	prometheus.MustRegister(m.runsTotal, m.runDuration, m.spotsFound, m.messagesSent)
	return m
}

// ObserveRun фиксирует завершение прогона с указанным статусом и длительностью.
// Нулевая длительность (прогон упал до тайминга) в гистограмму не попадает.
func (m *Metrics) ObserveRun(status string, seconds float64) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(status).Inc()
	if seconds > 0 {
		m.runDuration.Observe(seconds)
	}
}

// SetSpotsFound фиксирует количество найденных мест последнего прогона
func (m *Metrics) SetSpotsFound(count int) {
	if m == nil {
		return
	}
	m.spotsFound.Set(float64(count))
}

// IncMessagesSent фиксирует успешную доставку уведомления
func (m *Metrics) IncMessagesSent() {
	if m == nil {
		return
	}
	m.messagesSent.Inc()
}
