package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		MustRegister(reg)
		MustRegister(reg)
	})

	CustomerEventsTotal.WithLabelValues("created").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(CustomerEventsTotal.WithLabelValues("created")), 1.0)

	n, err := testutil.GatherAndCount(reg, "clearbroker_customer_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
