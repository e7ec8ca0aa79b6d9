package observability

import (
	"fmt"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes history activity to Prometheus.
type Metrics struct {
	captured *prometheus.CounterVec
	evicted  *prometheus.CounterVec
	replayed *prometheus.CounterVec
	length   *prometheus.GaugeVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		captured: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewind_actions_captured_total",
				Help: "Total number of captured actions",
			},
			[]string{"manager", "kind"},
		),
		evicted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewind_actions_evicted_total",
				Help: "Total number of actions evicted by the history bound",
			},
			[]string{"manager"},
		),
		replayed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewind_cycles_replayed_total",
				Help: "Total number of undone or redone cycles",
			},
			[]string{"manager", "direction"},
		),
		length: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rewind_history_length",
				Help: "Number of actions currently held in the history",
			},
			[]string{"manager"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rewind_replay_duration_seconds",
				Help:    "Duration of cycle replays",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"direction"},
		),
	}

	for _, c := range []prometheus.Collector{m.captured, m.evicted, m.replayed, m.length, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// Hooks returns the lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCapture: func(e *domain.ActionEvent) {
			m.captured.WithLabelValues(e.Manager, e.Action.Kind).Inc()
			m.length.WithLabelValues(e.Manager).Set(float64(e.Length))
		},
		OnEvict: func(e *domain.ActionEvent) {
			m.evicted.WithLabelValues(e.Manager).Inc()
			m.length.WithLabelValues(e.Manager).Set(float64(e.Length))
		},
		OnUndo: m.observeReplay,
		OnRedo: m.observeReplay,
		OnClear: func(e *domain.StackEvent) {
			m.length.WithLabelValues(e.Manager).Set(0)
		},
		OnMerge: func(e *domain.StackEvent) {
			m.length.WithLabelValues(e.Manager).Set(float64(e.Length))
		},
	}
}

func (m *Metrics) observeReplay(e *domain.CycleEvent) {
	direction := string(e.Type)
	m.replayed.WithLabelValues(e.Manager, direction).Inc()
	m.duration.WithLabelValues(direction).Observe(e.Duration().Seconds())
}
