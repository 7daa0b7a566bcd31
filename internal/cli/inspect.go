package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/graphview"
)

type inspectOpts struct {
	width, height int
	seed          uint64
	frames        int
	selectNodes   []string
	selectEdges   []string
	script        string
	positions     bool
	center        bool
}

func newInspectCmd() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <document.toml>",
		Short: "Load a graph document without a window and print the view state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 1024, "viewport width")
	f.IntVar(&opts.height, "height", 768, "viewport height")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for placing nodes without a position (0 = random)")
	f.IntVar(&opts.frames, "frames", 1, "frames to run before printing")
	f.StringSliceVar(&opts.selectNodes, "select-nodes", nil, "node ids to select")
	f.StringSliceVar(&opts.selectEdges, "select-edges", nil, "edge ids to select")
	f.StringVar(&opts.script, "script", "", "JSON script to run; frames are added until it finishes")
	f.BoolVar(&opts.positions, "positions", false, "list node positions")
	f.BoolVar(&opts.center, "center", false, "center the graph before running frames")
	return cmd
}

func runInspect(cmd *cobra.Command, path string, opts inspectOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	r := graphview.NewHeadlessRenderer(opts.width, opts.height)
	view, _, err := loadView(ctx, path, r, func(cfg *graphview.Config) {
		cfg.Rand = seededRand(opts.seed)
	})
	if err != nil {
		return err
	}

	if len(opts.selectNodes) > 0 {
		view.SelectNodes(opts.selectNodes...)
	}
	if len(opts.selectEdges) > 0 {
		view.SelectEdges(opts.selectEdges...)
	}
	if opts.center {
		view.Center()
	}

	var script *graphview.Script
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return err
		}
		script, err = graphview.LoadScript(data)
		if err != nil {
			return err
		}
		view.SetScript(script)
	}

	view.StartRenderLoop()
	for i := 0; i < opts.frames || (script != nil && !script.Done()); i++ {
		r.Tick()
		if i > maxScriptFrames {
			logger.Warn("script did not finish", "frames", i)
			break
		}
	}
	view.StopRenderLoop()

	printInspect(cmd.OutOrStdout(), path, view, r, opts.positions)
	return nil
}

// maxScriptFrames bounds a headless script run.
const maxScriptFrames = 100_000

func printInspect(w io.Writer, path string, view *graphview.GraphView, r *graphview.HeadlessRenderer, positions bool) {
	printTitle(w, path)
	printField(w, "nodes", view.Registry().Len(graphview.KindNode))
	printField(w, "edges", view.Registry().Len(graphview.KindEdge))
	printField(w, "selected nodes", fmt.Sprint(view.SelectedNodes()))
	printField(w, "selected edges", fmt.Sprint(view.SelectedEdges()))
	b := view.BoundingRectangle()
	if b.IsEmpty() {
		printField(w, "bounds", "empty")
	} else {
		printField(w, "bounds", fmt.Sprintf("%.1f,%.1f %.1fx%.1f", b.X, b.Y, b.Width, b.Height))
	}
	printField(w, "zoom", view.Zoom())
	printField(w, "state", view.State().String())
	printField(w, "frames", view.Frames())
	if shots := r.Screenshots(); len(shots) > 0 {
		printField(w, "screenshots", fmt.Sprint(shots))
	}
	if !positions {
		return
	}
	for _, id := range view.Registry().IDs(graphview.KindNode) {
		p, err := view.NodePosition(id)
		if err != nil {
			continue
		}
		printField(w, id, fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
	}
}
