package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Evaluations.WithLabelValues("ok").Inc()
	m.Matches.WithLabelValues("hazard").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Matches.WithLabelValues("hazard")))

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)

	// a second registry accepts a fresh set without panicking
	assert.NotPanics(t, func() { NewMetrics(prometheus.NewRegistry()) })
}
