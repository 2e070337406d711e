// Package prom adapts mrc's optional run instrumentation to Prometheus,
// the same way the donor's bench command exposed a promhttp.Handler
// alongside its own workload.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements mrc.Metrics and exports Prometheus counters/gauges for
// one mrc run: accesses handed to the algorithm, the final curve's point
// count, and the run's total wall-clock duration.
type Adapter struct {
	accesses    prometheus.Counter
	curvePoints prometheus.Gauge
	runSeconds  prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	a := &Adapter{
		accesses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "accesses_total",
			Help:        "Accesses handed to the configured algorithm",
			ConstLabels: constLabels,
		}),
		curvePoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "curve_points",
			Help:        "Number of points on the produced miss-ratio curve",
			ConstLabels: constLabels,
		}),
		runSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "run_duration_seconds",
			Help:        "Wall-clock duration of the most recent run",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(a.accesses, a.curvePoints, a.runSeconds)
	return a
}

// IncAccesses counts one access handed to the algorithm.
func (a *Adapter) IncAccesses() { a.accesses.Inc() }

// SetCurvePoints reports the final curve's point count.
func (a *Adapter) SetCurvePoints(n int) { a.curvePoints.Set(float64(n)) }

// ObserveRunDuration reports the total wall-clock time of one run.
func (a *Adapter) ObserveRunDuration(d time.Duration) { a.runSeconds.Set(d.Seconds()) }
