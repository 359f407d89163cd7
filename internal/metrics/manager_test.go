package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterSeriesMutations.WithLabelValues("create").Inc()
	m.CounterSeriesMutations.WithLabelValues("create").Inc()
	m.CounterCompletions.WithLabelValues(SourceMatch).Inc()
	m.GaugeSeries.Set(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterSeriesMutations.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterCompletions.WithLabelValues(SourceMatch)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.GaugeSeries))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["planner_test_server_series_mutations"])
	assert.True(t, names["planner_test_server_series"])
}
