package graphview

import (
	"time"

	"github.com/charmbracelet/log"
)

// frameStats holds per-frame timings. Only logged in debug mode.
type frameStats struct {
	tweenTime      time.Duration
	pointerTime    time.Duration
	distortionTime time.Duration
	renderTime     time.Duration
	visibleNodes   int
	visibleEdges   int
	activeFilters  int
}

func (s frameStats) total() time.Duration {
	return s.tweenTime + s.pointerTime + s.distortionTime + s.renderTime
}

// SetDebugMode switches the view logger between debug and warn level. In
// debug mode frame timings are logged every GraphConfig.DebugInterval frames.
func (gv *GraphView) SetDebugMode(on bool) {
	gv.debug = on
	if on {
		gv.logger.SetLevel(log.DebugLevel)
	} else {
		gv.logger.SetLevel(log.WarnLevel)
	}
}

// DebugMode reports whether debug mode is on.
func (gv *GraphView) DebugMode() bool { return gv.debug }

func (gv *GraphView) debugLog(stats frameStats) {
	if !gv.debug {
		return
	}
	interval := gv.cfg.Graph.DebugInterval
	if interval <= 0 || gv.frames%uint64(interval) != 0 {
		return
	}
	gv.logger.Debug("frame",
		"n", gv.frames,
		"tween", stats.tweenTime,
		"pointer", stats.pointerTime,
		"distortion", stats.distortionTime,
		"render", stats.renderTime,
		"total", stats.total(),
	)
	gv.logger.Debug("scene",
		"nodes", stats.visibleNodes,
		"edges", stats.visibleEdges,
		"filters", stats.activeFilters,
	)
	debugCheckLayerSize(gv.logger, gv.layers[KindNode].normal)
	debugCheckLayerSize(gv.logger, gv.layers[KindEdge].normal)
}

// debugMaxLayerSize is the handle count above which a layer is reported.
const debugMaxLayerSize = 5000

func debugCheckLayerSize(l *log.Logger, layer *Layer) {
	if n := layer.Len(); n > debugMaxLayerSize {
		l.Warn("large layer", "layer", layer.Node().Name, "handles", n, "threshold", debugMaxLayerSize)
	}
}
