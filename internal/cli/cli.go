// Package cli implements the graphview command-line interface.
//
// # Commands
//
//   - view: open a graph document in a window with the fisheye controls
//   - inspect: load a document headlessly and print what the view holds
//   - export: write the laid-out graph as DOT, SVG or PNG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through the command context.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the graphview CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "graphview",
		Short:        "graphview draws graphs with a fisheye lens",
		Long:         `graphview loads a TOML graph document and draws it as an interactive scene with selection, dragging and fisheye distortion.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("graphview %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newViewCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newExportCmd())
	return root
}
