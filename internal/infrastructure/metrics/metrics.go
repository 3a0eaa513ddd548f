// Package metrics exposes Prometheus instrumentation for the engine's own
// operations: re-evaluation duration and arrangement throughput from the
// Re-evaluation Coordinator, and dependency-cycle detections from the
// Dependency Scheduler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// cycleDetectedMessage is the exact log message scheduler.TopologicalSort*
// emits via logger.Warn() when CyclePolicyLogAndContinue degrades a cycle
// to best-effort order. CycleHook matches on it rather than threading a
// counter through the scheduler's public API.
const cycleDetectedMessage = "dependency cycle detected among arrangements; degrading to best-effort order"

// Collector holds every Prometheus metric the engine records about its own
// re-evaluation work, as opposed to metrics about the pictures/arrangements
// it operates over.
type Collector struct {
	reEvaluationDuration *prometheus.HistogramVec
	arrangementsRun      *prometheus.CounterVec
	groupsMutated        prometheus.Counter
	cycleDetectedTotal   prometheus.Counter
}

// NewCollector creates every engine metric and registers it with reg. Pass
// prometheus.DefaultRegisterer in production; tests should pass a fresh
// prometheus.NewRegistry() so repeated Collector construction in the same
// process never hits a duplicate-registration panic.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		reEvaluationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "arrangement_engine",
				Subsystem: "coordinator",
				Name:      "reevaluation_duration_seconds",
				Help:      "Duration of a Re-evaluation Coordinator entry point, labeled by entry point name",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"entry_point"},
		),

		arrangementsRun: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "arrangement_engine",
				Subsystem: "coordinator",
				Name:      "arrangements_run_total",
				Help:      "Total number of arrangements classified during a re-evaluation pass, labeled by entry point name",
			},
			[]string{"entry_point"},
		),

		groupsMutated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "arrangement_engine",
				Subsystem: "coordinator",
				Name:      "groups_mutated_total",
				Help:      "Total number of arrangements whose strategy was persisted back after classification created a new group",
			},
		),

		cycleDetectedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "arrangement_engine",
				Subsystem: "scheduler",
				Name:      "cycle_detected_total",
				Help:      "Total number of dependency cycles detected among arrangements and degraded to best-effort order",
			},
		),
	}
}

// ObserveReEvaluation records the duration of one coordinator entry point
// invocation.
func (c *Collector) ObserveReEvaluation(entryPoint string, seconds float64) {
	c.reEvaluationDuration.WithLabelValues(entryPoint).Observe(seconds)
}

// RecordArrangementRun increments the count of arrangements classified
// during a re-evaluation pass.
func (c *Collector) RecordArrangementRun(entryPoint string) {
	c.arrangementsRun.WithLabelValues(entryPoint).Inc()
}

// RecordGroupMutation increments the count of arrangements whose strategy
// was persisted back after classification lazily created a group.
func (c *Collector) RecordGroupMutation() {
	c.groupsMutated.Inc()
}

// ArrangementsRunFor exposes the arrangements-run counter for one entry
// point as a prometheus.Metric, for use with
// prometheus/client_golang/prometheus/testutil in tests.
func (c *Collector) ArrangementsRunFor(entryPoint string) prometheus.Counter {
	return c.arrangementsRun.WithLabelValues(entryPoint)
}

// ReEvaluationCountFor exposes the re-evaluation-duration histogram's
// sample count for one entry point, for use with testutil in tests.
func (c *Collector) ReEvaluationCountFor(entryPoint string) prometheus.Metric {
	return c.reEvaluationDuration.WithLabelValues(entryPoint)
}

// GroupsMutatedTotal exposes the group-mutation counter, for use with
// testutil in tests.
func (c *Collector) GroupsMutatedTotal() prometheus.Counter {
	return c.groupsMutated
}

// CycleDetectedTotal exposes the cycle-detection counter, for use with
// testutil in tests.
func (c *Collector) CycleDetectedTotal() prometheus.Counter {
	return c.cycleDetectedTotal
}

// CycleHook returns a zerolog.Hook that increments cycleDetectedTotal
// whenever the scheduler logs its cycle-degradation warning. Install it on
// the logger passed to scheduler.TopologicalSort* so cycle detections are
// observable without changing the scheduler's own signature:
//
//	logger := baseLogger.Hook(collector.CycleHook())
func (c *Collector) CycleHook() zerolog.Hook {
	return zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, message string) {
		if level == zerolog.WarnLevel && message == cycleDetectedMessage {
			c.cycleDetectedTotal.Inc()
		}
	})
}
