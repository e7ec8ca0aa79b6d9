package observability

import (
	"testing"
	"time"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// find returns the metric of family name whose labels include want.
func find(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			got := make(map[string]string)
			for _, l := range m.GetLabel() {
				got[l.GetName()] = l.GetValue()
			}
			for k, v := range want {
				if got[k] != v {
					continue next
				}
			}
			return m
		}
	}
	t.Fatalf("metric %s%v not found", name, want)
	return nil
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)
	hooks := metrics.Hooks()

	base := func(typ domain.EventType) domain.EventBase {
		return domain.EventBase{Timestamp: time.Now(), Type: typ, Manager: "doc"}
	}
	action := &domain.Action{ID: "1", Kind: domain.KindAdd}

	// 1. Two captures and an eviction
	hooks.OnCapture(&domain.ActionEvent{EventBase: base(domain.EventCapture), Action: action, Length: 1})
	hooks.OnCapture(&domain.ActionEvent{EventBase: base(domain.EventCapture), Action: action, Length: 2})
	hooks.OnEvict(&domain.ActionEvent{EventBase: base(domain.EventEvict), Action: action, Length: 1})

	assert.Equal(t, 2.0, find(t, reg, "rewind_actions_captured_total", map[string]string{"manager": "doc", "kind": "add"}).GetCounter().GetValue())
	assert.Equal(t, 1.0, find(t, reg, "rewind_actions_evicted_total", map[string]string{"manager": "doc"}).GetCounter().GetValue())
	assert.Equal(t, 1.0, find(t, reg, "rewind_history_length", map[string]string{"manager": "doc"}).GetGauge().GetValue())

	// 2. Replays are counted per direction with their duration
	start := time.Now()
	hooks.OnUndo(&domain.CycleEvent{EventBase: base(domain.EventUndo), StartedAt: start, FinishedAt: start.Add(time.Millisecond)})
	hooks.OnUndo(&domain.CycleEvent{EventBase: base(domain.EventUndo), StartedAt: start, FinishedAt: start})
	hooks.OnRedo(&domain.CycleEvent{EventBase: base(domain.EventRedo), StartedAt: start, FinishedAt: start})

	assert.Equal(t, 2.0, find(t, reg, "rewind_cycles_replayed_total", map[string]string{"direction": "undo"}).GetCounter().GetValue())
	assert.Equal(t, 1.0, find(t, reg, "rewind_cycles_replayed_total", map[string]string{"direction": "redo"}).GetCounter().GetValue())
	h := find(t, reg, "rewind_replay_duration_seconds", map[string]string{"direction": "undo"}).GetHistogram()
	assert.Equal(t, uint64(2), h.GetSampleCount())
	assert.InDelta(t, 0.001, h.GetSampleSum(), 1e-9)

	// 3. Clear resets the gauge
	hooks.OnClear(&domain.StackEvent{EventBase: base(domain.EventClear)})
	assert.Equal(t, 0.0, find(t, reg, "rewind_history_length", map[string]string{"manager": "doc"}).GetGauge().GetValue())
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
