package metrics_test

import (
	"io"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/archypix/arrangement-engine/internal/infrastructure/metrics"
)

func TestCollector_RecordArrangementRun(t *testing.T) {
	t.Parallel()

	c := metrics.NewCollector(prometheus.NewRegistry())
	c.RecordArrangementRun("pictures_added")
	c.RecordArrangementRun("pictures_added")
	c.RecordArrangementRun("tags_changed")

	assert.InDelta(t, 2, testutil.ToFloat64(c.ArrangementsRunFor("pictures_added")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.ArrangementsRunFor("tags_changed")), 0)
}

func TestCollector_RecordGroupMutation(t *testing.T) {
	t.Parallel()

	c := metrics.NewCollector(prometheus.NewRegistry())
	c.RecordGroupMutation()
	c.RecordGroupMutation()

	assert.InDelta(t, 2, testutil.ToFloat64(c.GroupsMutatedTotal()), 0)
}

func TestCollector_ObserveReEvaluation(t *testing.T) {
	t.Parallel()

	c := metrics.NewCollector(prometheus.NewRegistry())
	c.ObserveReEvaluation("arrangement_edited", 0.25)
	c.ObserveReEvaluation("arrangement_edited", 0.75)

	var m dto.Metric
	require.NoError(t, c.ReEvaluationCountFor("arrangement_edited").Write(&m))
	require.NotNil(t, m.Histogram)
	assert.EqualValues(t, 2, m.Histogram.GetSampleCount())
	assert.InDelta(t, 1.0, m.Histogram.GetSampleSum(), 0.001)
}

func TestCollector_CycleHook(t *testing.T) {
	t.Parallel()

	c := metrics.NewCollector(prometheus.NewRegistry())
	logger := zerolog.New(io.Discard).Hook(c.CycleHook())

	logger.Warn().Msg("dependency cycle detected among arrangements; degrading to best-effort order")
	logger.Warn().Msg("some unrelated warning")

	assert.InDelta(t, 1, testutil.ToFloat64(c.CycleDetectedTotal()), 0)
}
