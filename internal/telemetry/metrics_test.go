package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInitMetrics_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		InitMetrics()
		InitMetrics()
	})

	// Registered collectors reject a second registration
	err := prometheus.DefaultRegisterer.Register(PollsTotal)
	assert.Error(t, err)
}

func TestPollsTotal_Labels(t *testing.T) {
	before := testutil.ToFloat64(PollsTotal.WithLabelValues("ok"))
	PollsTotal.WithLabelValues("ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PollsTotal.WithLabelValues("ok")))
}
