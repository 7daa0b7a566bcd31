package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/phanxgames/graphview"
)

type exportOpts struct {
	width, height int
	seed          uint64
	format        string
	output        string
}

func newExportCmd() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <document.toml>",
		Short: "Write the laid-out graph as DOT, SVG or PNG",
		Long: `Write the laid-out graph as DOT, SVG or PNG.

Node positions are pinned to where the view placed them, so the export
matches what "graphview view" shows before any dragging.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 1024, "viewport width used to place nodes without a position")
	f.IntVar(&opts.height, "height", 768, "viewport height used to place nodes without a position")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for placing nodes without a position (0 = random)")
	f.StringVarP(&opts.format, "format", "f", "svg", "output format: dot, svg or png")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func runExport(cmd *cobra.Command, path string, opts exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	r := graphview.NewHeadlessRenderer(opts.width, opts.height)
	view, _, err := loadView(ctx, path, r, func(cfg *graphview.Config) {
		cfg.Rand = seededRand(opts.seed)
	})
	if err != nil {
		return err
	}

	dot := toDOT(view)
	var out []byte
	switch strings.ToLower(opts.format) {
	case "dot":
		out = []byte(dot)
	case "svg":
		out, err = renderDOT(ctx, dot, graphviz.SVG)
	case "png":
		out, err = renderDOT(ctx, dot, graphviz.PNG)
	default:
		return fmt.Errorf("unknown format %q (want dot, svg or png)", opts.format)
	}
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return err
	}
	logger.Debug("export written", "path", opts.output, "bytes", len(out))
	printSuccess(cmd.ErrOrStderr(), "wrote %s", opts.output)
	return nil
}

// pointsPerInch converts stage pixels to DOT sizes, which are in inches.
const pointsPerInch = 72.0

// toDOT writes the view's nodes at their current positions. Graphviz's y
// axis points up, so y is negated.
func toDOT(view *graphview.GraphView) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", view.Background().Hex())
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true];\n\n")

	for _, id := range view.Registry().IDs(graphview.KindNode) {
		p, err := view.NodePosition(id)
		if err != nil {
			continue
		}
		style, _ := view.NodeStyle(id)
		writeDOTNode(&buf, id, p, style)
	}
	buf.WriteString("\n")
	for _, id := range view.Registry().IDs(graphview.KindEdge) {
		e, ok := view.Graph().Edge(id)
		if !ok {
			continue
		}
		style, _ := view.EdgeStyle(id)
		arrow := "none"
		if style.Arrow.Enabled {
			arrow = "normal"
		}
		fmt.Fprintf(&buf, "  %q -> %q [id=%q, color=%q, penwidth=%g, arrowhead=%s];\n",
			e.SourceID(), e.TargetID(), id, style.Color.Hex(), style.Width, arrow)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(w io.Writer, id string, p graphview.Vec2, style graphview.NodeStyle) {
	label := style.Label.Text
	if label == "" {
		label = id
	}
	attrs := []string{
		fmt.Sprintf("pos=\"%g,%g!\"", p.X, -p.Y),
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("width=%g", style.Width/pointsPerInch),
		fmt.Sprintf("height=%g", style.Height/pointsPerInch),
		fmt.Sprintf("fillcolor=%q", style.Fill.Hex()),
		fmt.Sprintf("color=%q", style.Border.Hex()),
		fmt.Sprintf("penwidth=%g", style.BorderWidth),
	}
	if style.Shape == graphview.ShapeImage && style.Image != "" {
		attrs = append(attrs, fmt.Sprintf("image=%q", style.Image))
	}
	fmt.Fprintf(w, "  %q [%s];\n", id, strings.Join(attrs, ", "))
}

// renderDOT lays out dot with neato, keeping pinned positions, and renders
// it in format.
func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()
	g.SetLayout("neato")

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
