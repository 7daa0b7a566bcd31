package graphview

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FrameMetrics exposes render loop metrics to Prometheus. All methods are
// safe on a nil receiver.
type FrameMetrics struct {
	gatherer prometheus.Gatherer

	FramesTotal   prometheus.Counter
	FrameDuration prometheus.Histogram
	VisibleNodes  prometheus.Gauge
	VisibleEdges  prometheus.Gauge
}

// NewFrameMetrics registers the frame metrics against reg (the default
// registerer when nil). Collectors that are already registered are reused.
func NewFrameMetrics(reg prometheus.Registerer) (*FrameMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "graphview_frames_total",
		Help: "Number of frames rendered by the graph view.",
	}), "graphview_frames_total")
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "graphview_frame_duration_seconds",
		Help:    "Time spent in one frame: pointer, distortion and render submission.",
		Buckets: []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1},
	}), "graphview_frame_duration_seconds")
	if err != nil {
		return nil, err
	}

	nodes, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graphview_visible_nodes",
		Help: "Number of visible node handles in the last frame.",
	}), "graphview_visible_nodes")
	if err != nil {
		return nil, err
	}

	edges, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graphview_visible_edges",
		Help: "Number of visible edge handles in the last frame.",
	}), "graphview_visible_edges")
	if err != nil {
		return nil, err
	}

	return &FrameMetrics{
		gatherer:      gatherer,
		FramesTotal:   frames,
		FrameDuration: duration,
		VisibleNodes:  nodes,
		VisibleEdges:  edges,
	}, nil
}

// Gatherer returns the gatherer the metrics were registered with.
func (m *FrameMetrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return nil
	}
	return m.gatherer
}

// Handler serves the gathered metrics in the Prometheus text format.
func (m *FrameMetrics) Handler() http.Handler {
	gatherer := m.Gatherer()
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveFrame records one rendered frame.
func (m *FrameMetrics) ObserveFrame(d time.Duration, visibleNodes, visibleEdges int) {
	if m == nil {
		return
	}
	if m.FramesTotal != nil {
		m.FramesTotal.Inc()
	}
	if m.FrameDuration != nil {
		m.FrameDuration.Observe(d.Seconds())
	}
	if m.VisibleNodes != nil {
		m.VisibleNodes.Set(float64(visibleNodes))
	}
	if m.VisibleEdges != nil {
		m.VisibleEdges.Set(float64(visibleEdges))
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, name string) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			var zero C
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero C
		return zero, err
	}
	return c, nil
}
