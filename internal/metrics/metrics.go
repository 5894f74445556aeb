// metrics — prometheus-коллекторы NeuroNet.
// Экспортируются через promhttp.Handler() на /metrics (см. cmd/neuronet).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки result.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// ModerationOutcomes — исходы классификатора по категориям.
	ModerationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuronet",
		Subsystem: "moderation",
		Name:      "outcomes_total",
		Help:      "Moderation classifier outcomes.",
	}, []string{"outcome"})

	// FeedOperations — операции контейнера ленты по результату.
	FeedOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuronet",
		Subsystem: "feed",
		Name:      "operations_total",
		Help:      "Feed container operations by result.",
	}, []string{"operation", "result"})

	// PurchaseOutcomes — исходы покупок: ok, cancelled, not_found, error.
	PurchaseOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuronet",
		Subsystem: "purchases",
		Name:      "outcomes_total",
		Help:      "Purchase flow outcomes.",
	}, []string{"outcome"})

	// EntitlementCache — попадания и промахи кэша статуса подписки.
	EntitlementCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuronet",
		Subsystem: "cache",
		Name:      "entitlement_lookups_total",
		Help:      "Entitlement cache lookups by result.",
	}, []string{"result"})

	// HTTPRequests — длительность HTTP-запросов по маршруту и статусу.
	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "neuronet",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Result переводит ошибку в значение метки result.
func Result(err error) string {
	if err != nil {
		return ResultError
	}

	return ResultOK
}
