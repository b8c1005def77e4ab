// Package telemetry exposes frame and input metrics through Prometheus.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cellframe"

// Input kinds recorded by ObserveInput.
const (
	InputKey    = "key"
	InputLine   = "line"
	InputResize = "resize"
)

// Metrics holds the collectors the host loop updates. A nil *Metrics
// records nothing.
type Metrics struct {
	frames        prometheus.Counter
	layoutPasses  prometheus.Counter
	cellsPainted  prometheus.Counter
	colorChanges  prometheus.Counter
	frameDuration prometheus.Histogram
	inputEvents   *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames rendered and painted.",
		}),
		layoutPasses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_passes_total",
			Help:      "Measure and arrange passes over the element tree.",
		}),
		cellsPainted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_painted_total",
			Help:      "Cells sent to the device by the paint step.",
		}),
		colorChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "color_changes_total",
			Help:      "Active color switches issued while painting.",
		}),
		frameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent on layout, render and paint for one frame.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		inputEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_events_total",
			Help:      "Input events delivered to the element tree.",
		}, []string{"kind"}),
	}
}

// ObserveFrame records one painted frame.
func (m *Metrics) ObserveFrame(d time.Duration, cells, colorChanges int) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.cellsPainted.Add(float64(cells))
	m.colorChanges.Add(float64(colorChanges))
	m.frameDuration.Observe(d.Seconds())
}

// ObserveLayout records one layout pass.
func (m *Metrics) ObserveLayout() {
	if m == nil {
		return
	}
	m.layoutPasses.Inc()
}

// ObserveInput records an input event of the given kind.
func (m *Metrics) ObserveInput(kind string) {
	if m == nil {
		return
	}
	m.inputEvents.WithLabelValues(kind).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
