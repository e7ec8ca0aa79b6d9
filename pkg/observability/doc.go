/*
Package observability provides lifecycle hooks for monitoring rewind managers.

Every helper returns a domain.LifecycleHooks value; combine them with
MultiHooks and pass the result to rewind.WithLifecycleHooks.

  - LoggingHooks: structured log lines for every history event.
  - Metrics: Prometheus counters, gauge and replay duration histogram.
  - TracingHooks: OpenTelemetry spans covering each replayed cycle.
  - JournalHooks: entries appended to a ports.Journal.
*/
package observability
