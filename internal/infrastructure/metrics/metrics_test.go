package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/khqr-offline/internal/infrastructure/metrics"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.Generation(metrics.ResultReady)
	r.Generation(metrics.ResultReady)
	r.Generation(metrics.ResultInvalidAmount)
	r.Save(metrics.ResultOK)
	r.Restore(metrics.ResultEmpty)

	n, err := testutil.GatherAndCount(reg, "khqr_generations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(reg, "khqr_saves_total", "khqr_restores_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecorder_Nil(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.Generation(metrics.ResultReady)
		r.Save(metrics.ResultOK)
		r.Restore(metrics.ResultError)
	})
}
