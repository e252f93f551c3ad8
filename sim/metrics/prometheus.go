package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder backed by Prometheus.
//
// Metrics are created and registered lazily on first use, so constructing a
// recorder that is never fed has no effect on the registry.
type PrometheusRecorder struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	boxesCompleted   prometheus.Counter
	residence        prometheus.Histogram
	moves            *prometheus.CounterVec
	disruptions      *prometheus.CounterVec
	degradedDuration prometheus.Histogram
	stationWorkers   *prometheus.GaugeVec
	stationWaiting   *prometheus.GaugeVec
	stationInService *prometheus.GaugeVec
	stationDegraded  *prometheus.GaugeVec
	clock            prometheus.Gauge
}

// Compile-time assertion that PrometheusRecorder implements Recorder.
var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheus creates a new Prometheus-backed recorder.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "workflow_sim" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "workflow_sim"
	}

	return &PrometheusRecorder{reg: reg, namespace: namespace}
}

func (p *PrometheusRecorder) ensureRegistered() {
	p.once.Do(func() {
		p.boxesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "line",
			Name:      "boxes_completed_total",
			Help:      "Total boxes that left the last workstation.",
		})
		p.residence = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "line",
			Name:      "residence_seconds",
			Help:      "Simulated time a box spent in the line.",
			Buckets:   prometheus.ExponentialBuckets(60, 2, 12), // 1min .. ~34h
		})
		p.moves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "policy",
			Name:      "worker_moves_total",
			Help:      "Total worker reassignments by policy and reason.",
		}, []string{"policy", "reason"})
		p.disruptions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "disruption",
			Name:      "breakdowns_total",
			Help:      "Total workstation breakdowns by station.",
		}, []string{"station"})
		p.degradedDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "disruption",
			Name:      "degraded_seconds",
			Help:      "Simulated duration of completed breakdowns.",
			Buckets:   prometheus.LinearBuckets(600, 600, 12), // 10min .. 2h
		})
		p.stationWorkers = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "station",
			Name:      "workers",
			Help:      "Workers currently assigned to the station.",
		}, []string{"station"})
		p.stationWaiting = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "station",
			Name:      "waiting_boxes",
			Help:      "Boxes in the station's wait queue.",
		}, []string{"station"})
		p.stationInService = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "station",
			Name:      "in_service_boxes",
			Help:      "Boxes being worked on at the station.",
		}, []string{"station"})
		p.stationDegraded = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "station",
			Name:      "degraded",
			Help:      "1 while the station is broken down, else 0.",
		}, []string{"station"})
		p.clock = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "simulated_time_seconds",
			Help:      "Current simulation clock.",
		})

		p.reg.MustRegister(
			p.boxesCompleted,
			p.residence,
			p.moves,
			p.disruptions,
			p.degradedDuration,
			p.stationWorkers,
			p.stationWaiting,
			p.stationInService,
			p.stationDegraded,
			p.clock,
		)
	})
}

// BoxCompleted counts the box and observes its residence.
func (p *PrometheusRecorder) BoxCompleted(residence float64) {
	p.ensureRegistered()
	p.boxesCompleted.Inc()
	p.residence.Observe(residence)
}

// WorkerMoved counts the reassignment.
func (p *PrometheusRecorder) WorkerMoved(policy, reason string) {
	p.ensureRegistered()
	p.moves.WithLabelValues(policy, reason).Inc()
}

// DisruptionStarted counts the breakdown and flags the station degraded.
func (p *PrometheusRecorder) DisruptionStarted(station string) {
	p.ensureRegistered()
	p.disruptions.WithLabelValues(station).Inc()
	p.stationDegraded.WithLabelValues(station).Set(1)
}

// DisruptionRecovered observes the breakdown duration and clears the flag.
func (p *PrometheusRecorder) DisruptionRecovered(station string, duration float64) {
	p.ensureRegistered()
	p.degradedDuration.Observe(duration)
	p.stationDegraded.WithLabelValues(station).Set(0)
}

// StationState sets the station gauges.
func (p *PrometheusRecorder) StationState(station string, workers, waiting, inService int, degraded bool) {
	p.ensureRegistered()
	p.stationWorkers.WithLabelValues(station).Set(float64(workers))
	p.stationWaiting.WithLabelValues(station).Set(float64(waiting))
	p.stationInService.WithLabelValues(station).Set(float64(inService))
	d := 0.0
	if degraded {
		d = 1
	}
	p.stationDegraded.WithLabelValues(station).Set(d)
}

// SimulatedTime sets the clock gauge.
func (p *PrometheusRecorder) SimulatedTime(seconds float64) {
	p.ensureRegistered()
	p.clock.Set(seconds)
}
