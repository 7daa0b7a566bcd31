package graphview

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFrameMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewFrameMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	m.ObserveFrame(2*time.Millisecond, 7, 3)
	m.ObserveFrame(time.Millisecond, 5, 1)

	if got := testutil.ToFloat64(m.FramesTotal); got != 2 {
		t.Errorf("frames_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.VisibleNodes); got != 5 {
		t.Errorf("visible_nodes = %v, want 5", got)
	}
	if got := testutil.ToFloat64(m.VisibleEdges); got != 1 {
		t.Errorf("visible_edges = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.FrameDuration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestFrameMetricsReuseRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewFrameMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewFrameMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	b.ObserveFrame(0, 0, 0)
	if got := testutil.ToFloat64(a.FramesTotal); got != 1 {
		t.Errorf("shared counter = %v, want 1", got)
	}
}

func TestFrameMetricsNil(t *testing.T) {
	var m *FrameMetrics
	m.ObserveFrame(time.Second, 1, 1)
	if m.Gatherer() != nil {
		t.Error("nil metrics should have no gatherer")
	}
}

func TestFrameMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, _ := NewFrameMetrics(reg)
	m.ObserveFrame(time.Millisecond, 4, 2)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "graphview_visible_nodes 4") {
		t.Errorf("scrape missing visible nodes:\n%s", body)
	}
}

func TestViewRecordsFrames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, _ := NewFrameMetrics(reg)
	gv, _ := newTestView(t, pathGraph(t), pathLayout())
	gv.metrics = m
	gv.FilterGraph([]string{"A"}, nil)
	gv.RenderFrame()

	if got := testutil.ToFloat64(m.VisibleNodes); got != 1 {
		t.Errorf("visible_nodes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.VisibleEdges); got != 0 {
		t.Errorf("visible_edges = %v, want 0", got)
	}
}
