package observability

import (
	"context"

	"github.com/aretw0/rewind/pkg/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingHooks records one span per replayed cycle, timed from the start to
// the end of the replay, and one instant span per capture.
func TracingHooks(tracer trace.Tracer) domain.LifecycleHooks {
	replay := func(name string) func(*domain.CycleEvent) {
		return func(e *domain.CycleEvent) {
			_, span := tracer.Start(context.Background(), name,
				trace.WithTimestamp(e.StartedAt),
				trace.WithAttributes(
					attribute.String("rewind.manager", e.Manager),
					attribute.Int("rewind.cycle", e.CycleIndex),
					attribute.Int("rewind.actions", len(e.Actions)),
					attribute.StringSlice("rewind.kinds", kindsOf(e.Actions)),
					attribute.Int("rewind.pointer", e.Pointer),
				),
			)
			span.End(trace.WithTimestamp(e.FinishedAt))
		}
	}

	return domain.LifecycleHooks{
		OnCapture: func(e *domain.ActionEvent) {
			_, span := tracer.Start(context.Background(), "rewind.capture",
				trace.WithTimestamp(e.Timestamp),
				trace.WithAttributes(
					attribute.String("rewind.manager", e.Manager),
					attribute.String("rewind.kind", e.Action.Kind),
					attribute.String("rewind.action_id", e.Action.ID),
					attribute.Int("rewind.cycle", e.Action.CycleIndex),
				),
			)
			span.End(trace.WithTimestamp(e.Timestamp))
		},
		OnUndo: replay("rewind.undo"),
		OnRedo: replay("rewind.redo"),
	}
}
