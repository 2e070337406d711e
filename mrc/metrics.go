package mrc

import "time"

// Metrics receives optional progress instrumentation from Run. A nil
// Metrics in Config disables all instrumentation; see metrics/prom for the
// Prometheus-backed implementation wired into cmd/mrc's --metrics-addr flag.
type Metrics interface {
	// IncAccesses counts one access handed to the algorithm.
	IncAccesses()
	// SetCurvePoints reports the final curve's point count.
	SetCurvePoints(n int)
	// ObserveRunDuration reports the total wall-clock time of one Run call.
	ObserveRunDuration(d time.Duration)
}
