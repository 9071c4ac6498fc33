// Package cli provides the Cobra command structure for mdreview.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdreview/internal/logging"
	"github.com/yaklabco/mdreview/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root mdreview command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mdreview",
		Short: "Review comments for Markdown files, stored in the files themselves",
		Long: `mdreview anchors review comments to spans of a Markdown document and
stores them inside the document as HTML comment markers. The file stays
valid Markdown for every other tool; mdreview reads the markers back to
list, render, and manage the comments.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newAddCommand(opts))
	rootCmd.AddCommand(newRemoveCommand(opts))
	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newStripCommand(opts))
	rootCmd.AddCommand(newRenderCommand(opts))
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// loadConfig resolves the effective configuration for a document: an
// explicit --config path wins, otherwise the document's directory and its
// parents are searched for .mdreview.yaml.
func (o *rootOptions) loadConfig(docPath string) (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	dir, err := filepath.Abs(filepath.Dir(docPath))
	if err != nil {
		return config.Default(), nil
	}
	return config.Discover(dir)
}

// termWidth returns the width of the terminal behind w, or 0 when w is not
// a terminal.
func termWidth(w any) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
