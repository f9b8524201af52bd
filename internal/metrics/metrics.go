// Package metrics provides the centralized Prometheus metrics registry for keiba-desk.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "keiba_desk"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AllocationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "allocations_total",
		Help:      "Total number of bet allocations computed by bet type",
	}, []string{"bet_type"})
	AllocationShortfallTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "allocation_shortfall_units_total",
		Help:      "Budget units dropped by integer division across allocations",
	}, []string{"bet_type"})
	PoolFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pool_fallbacks_total",
		Help:      "Allocations that fell back to the top-scored pool",
	}, []string{"bet_type"})
	SimulatedPurchasesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulated_purchases_total",
		Help:      "Total number of simulated ticket purchases",
	}, []string{"bet_type"})
	SessionMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_mutations_total",
		Help:      "Mark and manual score changes by kind",
	}, []string{"kind"})
	EntryRefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entry_refreshes_total",
		Help:      "Entry table refresh attempts by source and outcome",
	}, []string{"source", "success"})
)

// Gauge metrics
var (
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of sessions currently held in memory",
	})
)

// Histogram metrics
var (
	AllocationCombinations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "allocation_combinations",
		Help:      "Number of combinations enumerated per allocation",
		Buckets:   []float64{1, 3, 6, 10, 15, 20, 30, 60, 120, 336},
	}, []string{"bet_type"})
	AllocationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "allocation_duration_seconds",
		Help:      "Duration of allocation requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AllocationsTotal)
		registry.MustRegister(AllocationShortfallTotal)
		registry.MustRegister(PoolFallbacksTotal)
		registry.MustRegister(SimulatedPurchasesTotal)
		registry.MustRegister(SessionMutationsTotal)
		registry.MustRegister(EntryRefreshesTotal)

		registry.MustRegister(ActiveSessions)

		registry.MustRegister(AllocationCombinations)
		registry.MustRegister(AllocationDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAllocation records a computed allocation.
func RecordAllocation(betType string, combinations, shortfall int, durationSeconds float64) {
	AllocationsTotal.WithLabelValues(betType).Inc()
	AllocationCombinations.WithLabelValues(betType).Observe(float64(combinations))
	if shortfall > 0 {
		AllocationShortfallTotal.WithLabelValues(betType).Add(float64(shortfall))
	}
	AllocationDuration.Observe(durationSeconds)
}

// RecordPoolFallback records a fallback to the top-scored pool.
func RecordPoolFallback(betType string) {
	PoolFallbacksTotal.WithLabelValues(betType).Inc()
}

// RecordSimulatedPurchase records a simulated purchase.
func RecordSimulatedPurchase(betType string) {
	SimulatedPurchasesTotal.WithLabelValues(betType).Inc()
}

// RecordSessionMutation records a mark or manual score change.
func RecordSessionMutation(kind string) {
	SessionMutationsTotal.WithLabelValues(kind).Inc()
}

// RecordEntryRefresh records an entry table refresh attempt.
func RecordEntryRefresh(source string, success bool) {
	EntryRefreshesTotal.WithLabelValues(source, strconv.FormatBool(success)).Inc()
}

// UpdateActiveSessions updates the active sessions gauge.
func UpdateActiveSessions(count int) {
	ActiveSessions.Set(float64(count))
}
