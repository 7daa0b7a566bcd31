package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/graphview"
)

type viewOpts struct {
	width, height int
	seed          uint64
	title         string
	fisheyeX      float64
	fisheyeY      float64
	polar         float64
	scaleNodes    bool
	scaleDecals   bool
	scaleArrows   bool
	center        bool
	showFPS       bool
	debug         bool
	script        string
	screenshots   string
	metricsAddr   string
}

func newViewCmd() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view <document.toml>",
		Short: "Open a graph document in a window",
		Long: `Open a graph document in a window.

Click a node to toggle its selection, drag it to move it. Fisheye flags
override the [filters] table of the document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 1024, "window width")
	f.IntVar(&opts.height, "height", 768, "window height")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for placing nodes without a position (0 = random)")
	f.StringVar(&opts.title, "title", "", "window title (default: document file name)")
	f.Float64Var(&opts.fisheyeX, "fisheye-x", 0, "horizontal Cartesian fisheye strength")
	f.Float64Var(&opts.fisheyeY, "fisheye-y", 0, "vertical Cartesian fisheye strength")
	f.Float64Var(&opts.polar, "polar", 0, "polar fisheye strength")
	f.BoolVar(&opts.scaleNodes, "scale-nodes", false, "shrink nodes away from the pointer")
	f.BoolVar(&opts.scaleDecals, "scale-decals", false, "shrink edge decals away from the pointer")
	f.BoolVar(&opts.scaleArrows, "scale-arrows", false, "shrink arrow heads away from the pointer")
	f.BoolVar(&opts.center, "center", true, "center the graph on start")
	f.BoolVar(&opts.showFPS, "fps", false, "show FPS")
	f.BoolVar(&opts.debug, "debug", false, "log frame timings")
	f.StringVar(&opts.script, "script", "", "JSON script to drive the view")
	f.StringVar(&opts.screenshots, "screenshots", "screenshots", "directory for script screenshots")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

// filterFlags applies the fisheye flags the user set on top of cfg.
func filterFlags(cmd *cobra.Command, opts viewOpts, cfg graphview.FilterConfig) graphview.FilterConfig {
	f := cmd.Flags()
	if f.Changed("fisheye-x") {
		cfg.CartesianFisheyeStrengthX = opts.fisheyeX
	}
	if f.Changed("fisheye-y") {
		cfg.CartesianFisheyeStrengthY = opts.fisheyeY
	}
	if f.Changed("polar") {
		cfg.PolarFisheyeStrength = opts.polar
	}
	if f.Changed("scale-nodes") {
		cfg.ScaleNodes = opts.scaleNodes
	}
	if f.Changed("scale-decals") {
		cfg.ScaleEdgeDecals = opts.scaleDecals
	}
	if f.Changed("scale-arrows") {
		cfg.ScaleEdgeArrows = opts.scaleArrows
	}
	return cfg
}

func runView(cmd *cobra.Command, path string, opts viewOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var metrics *graphview.FrameMetrics
	if opts.metricsAddr != "" {
		m, err := graphview.NewFrameMetrics(nil)
		if err != nil {
			return err
		}
		metrics = m
		stop := serveMetrics(ctx, opts.metricsAddr, m)
		defer stop()
	}

	r := graphview.NewEbitenRenderer(opts.width, opts.height)
	r.SetLogger(logger)
	r.ShowFPS = opts.showFPS
	r.ScreenshotDir = opts.screenshots

	view, _, err := loadView(ctx, path, r, func(cfg *graphview.Config) {
		cfg.Filters = filterFlags(cmd, opts, cfg.Filters)
		cfg.Metrics = metrics
		cfg.Rand = seededRand(opts.seed)
		r.Background = cfg.Graph.Background
	})
	if err != nil {
		return err
	}
	view.SetDebugMode(opts.debug)
	if opts.center {
		view.Center()
	}
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return err
		}
		s, err := graphview.LoadScript(data)
		if err != nil {
			return err
		}
		view.SetScript(s)
		logger.Info("script loaded", "path", opts.script, "steps", s.Len())
	}

	title := opts.title
	if title == "" {
		title = path
	}
	return graphview.Run(view, graphview.RunConfig{Title: title, Resizable: true})
}

// serveMetrics serves m on addr until ctx is done or stop is called.
func serveMetrics(ctx context.Context, addr string, m *graphview.FrameMetrics) (stop func()) {
	logger := loggerFromContext(ctx)
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return func() { close(done) }
}
