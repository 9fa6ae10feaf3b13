// Package metrics provides Prometheus metrics for the gesture calculator.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Evaluation outcomes.
const (
	OutcomeOK             = "ok"
	OutcomeEmpty          = "empty"
	OutcomeDivisionByZero = "division_by_zero"
	OutcomeInvalid        = "invalid"
)

// Manager owns the calculator's collectors.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	framesProcessed      prometheus.Counter
	frameLatency         prometheus.Histogram
	handsObserved        prometheus.Histogram
	tokensClassified     *prometheus.CounterVec
	tokensConfirmed      *prometheus.CounterVec
	evaluations          *prometheus.CounterVec
	extraHandsDropped    prometheus.Counter
	incompleteHands      prometheus.Counter
	subscribers          prometheus.Gauge
	recordingFramesSaved prometheus.Counter
}

var globalManager = NewManager() //nolint:gochecknoglobals // package-level helpers record here

// NewManager creates a manager registered on its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "handycalc",
		buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.framesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "frames_processed_total",
		Help:      "Total number of landmark frames run through the classifier",
	})
	m.frameLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "frame_processing_milliseconds",
		Help:      "Time spent classifying, stabilizing and accumulating one frame",
		Buckets:   m.buckets,
	})
	m.handsObserved = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "hands_per_frame",
		Help:      "Number of hands reported by the landmark source per frame",
		Buckets:   []float64{0, 1, 2, 3, 4},
	})
	m.tokensClassified = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "tokens_classified_total",
		Help:      "Raw per-frame classifications by token kind",
	}, []string{"kind"})
	m.tokensConfirmed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "tokens_confirmed_total",
		Help:      "Tokens confirmed by the stabilizer",
	}, []string{"token"})
	m.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "evaluations_total",
		Help:      "Expression evaluations by outcome",
	}, []string{"outcome"})
	m.extraHandsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "extra_hands_dropped_total",
		Help:      "Hands beyond the first two that were ignored",
	})
	m.incompleteHands = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "incomplete_observations_total",
		Help:      "Hands reported with fewer than 21 landmarks",
	})
	m.subscribers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "snapshot_subscribers",
		Help:      "Connected snapshot stream clients",
	})
	m.recordingFramesSaved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "recording_frames_saved_total",
		Help:      "Landmark frames written to recordings",
	})
}

// Registry returns the manager's registry.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the manager's metrics in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Default returns the process-wide manager.
func Default() *Manager { return globalManager }

// Handler serves the process-wide metrics.
func Handler() http.Handler { return globalManager.Handler() }

// RecordFrame records one processed frame.
func RecordFrame(hands int, latencyMs float64) {
	globalManager.framesProcessed.Inc()
	globalManager.handsObserved.Observe(float64(hands))
	globalManager.frameLatency.Observe(latencyMs)
}

// RecordClassified counts a raw classification of the given kind.
func RecordClassified(kind string) {
	globalManager.tokensClassified.WithLabelValues(kind).Inc()
}

// RecordConfirmed counts a confirmed token.
func RecordConfirmed(token string) {
	globalManager.tokensConfirmed.WithLabelValues(token).Inc()
}

// RecordEvaluation counts an evaluation outcome.
func RecordEvaluation(outcome string) {
	globalManager.evaluations.WithLabelValues(outcome).Inc()
}

// RecordExtraHands counts hands that were ignored.
func RecordExtraHands(n int) {
	if n > 0 {
		globalManager.extraHandsDropped.Add(float64(n))
	}
}

// RecordIncompleteObservation counts a truncated hand.
func RecordIncompleteObservation() {
	globalManager.incompleteHands.Inc()
}

// UpdateSubscribers sets the number of stream clients.
func UpdateSubscribers(n int) {
	globalManager.subscribers.Set(float64(n))
}

// RecordRecordingFrames counts frames written to a recording.
func RecordRecordingFrames(n int) {
	globalManager.recordingFramesSaved.Add(float64(n))
}
