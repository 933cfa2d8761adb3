// Package metrics содержит Prometheus-метрики сервера.
//
// Метрики регистрируются через promauto в DefaultRegisterer
// и отдаются по HTTP через Handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "redislite"

var (
	// CommandsTotal — обработанные команды по глаголу.
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of processed commands",
		},
		[]string{"verb"},
	)

	// CommandErrors — команды, завершившиеся ответом ERROR.
	CommandErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_errors_total",
			Help:      "Total number of commands answered with an ERROR line",
		},
		[]string{"verb"},
	)

	// CommandDuration — время выполнения команды (без сети).
	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command execution time excluding network I/O",
			Buckets:   []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .01},
		},
		[]string{"verb"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of GET hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of GET misses",
		},
	)

	// CacheEvictions — вытеснения по LRU.
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of LRU evictions",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Current number of cached keys",
		},
	)

	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_capacity",
			Help:      "Configured cache capacity",
		},
	)

	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Currently open client connections",
		},
	)

	ConnectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of accepted client connections",
		},
	)

	// ConnectionsRejected — отказы по лимиту соединений.
	ConnectionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_rejected_total",
			Help:      "Connections refused because the connection limit was reached",
		},
	)
)

// ObserveGet считает попадание или промах кеша.
// Подключается к кешу через storage.WithGetCallback.
func ObserveGet(hit bool) {
	if hit {
		CacheHits.Inc()
		return
	}
	CacheMisses.Inc()
}

// Handler возвращает HTTP-обработчик /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
