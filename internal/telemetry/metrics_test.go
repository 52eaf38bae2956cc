package telemetry_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/danlester/mcpdoc/internal/telemetry"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := telemetry.NewMetrics(reg)

	m.ObserveFetch("LangGraph", telemetry.OutcomeSuccess)
	m.ObserveFetch("LangGraph", telemetry.OutcomeSuccess)
	m.ObserveFetch("Ext", telemetry.OutcomeDenied)
	m.ObserveMutation(telemetry.OpAdd)
	m.SetSourceCount(3)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 3)

	fetches, err := testutil.GatherAndCount(reg, "mcpdoc_fetches_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, fetches)
}
