package cli

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/phanxgames/graphview"
)

// seededRand returns a source for fallback node placement. Zero means a
// random seed.
func seededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// loadView reads the document at path and builds a view painted by r.
// edit, when non-nil, adjusts the config before the view is created.
func loadView(ctx context.Context, path string, r graphview.Renderer, edit func(*graphview.Config)) (*graphview.GraphView, *graphview.Document, error) {
	logger := loggerFromContext(ctx)

	doc, err := graphview.LoadDocument(path)
	if err != nil {
		return nil, nil, err
	}
	g, cfg, err := doc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", path, err)
	}
	cfg.Logger = logger
	if edit != nil {
		edit(&cfg)
	}
	view, err := graphview.New(g, r, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("document loaded", "path", path, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return view, doc, nil
}
