package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	registry := InitRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, GetRegistry())
}

func TestRecordAllocation(t *testing.T) {
	InitRegistry()
	before := counterValue(AllocationShortfallTotal.WithLabelValues("single"))

	RecordAllocation("single", 3, 1, 0.001)

	assert.Equal(t, before+1, counterValue(AllocationShortfallTotal.WithLabelValues("single")))
	assert.GreaterOrEqual(t, counterValue(AllocationsTotal.WithLabelValues("single")), 1.0)
}

func TestRecordCounters(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		record func()
		read   func() float64
	}{
		{"pool fallback", func() { RecordPoolFallback("trio") }, func() float64 { return counterValue(PoolFallbacksTotal.WithLabelValues("trio")) }},
		{"simulated purchase", func() { RecordSimulatedPurchase("exacta") }, func() float64 { return counterValue(SimulatedPurchasesTotal.WithLabelValues("exacta")) }},
		{"session mutation", func() { RecordSessionMutation("mark") }, func() float64 { return counterValue(SessionMutationsTotal.WithLabelValues("mark")) }},
		{"entry refresh", func() { RecordEntryRefresh("remote", false) }, func() float64 { return counterValue(EntryRefreshesTotal.WithLabelValues("remote", "false")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.read()
			tt.record()
			assert.Equal(t, before+1, tt.read())
		})
	}
}

func TestUpdateActiveSessions(t *testing.T) {
	UpdateActiveSessions(4)
	assert.Equal(t, 4.0, gaugeValue(ActiveSessions))
}

func TestHandler(t *testing.T) {
	RecordPoolFallback("wide")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "keiba_desk_pool_fallbacks_total")
}

func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return -1
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(g prometheus.Gauge) float64 {
	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		return -1
	}
	return m.GetGauge().GetValue()
}
