package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsolated(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsRegistry(reg)

	m.TicksSkippedTotal.Add(2)
	m.RenderOpsTotal.WithLabelValues("created").Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TicksSkippedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RenderOpsTotal.WithLabelValues("created")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	assert.True(t, names["ecofly_ticks_skipped_total"])

	// a second registry must not collide with the first
	assert.NotPanics(t, func() { NewMetricsRegistry(prometheus.NewRegistry()) })
}
