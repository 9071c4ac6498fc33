package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdreview/pkg/fsutil"
	"github.com/yaklabco/mdreview/pkg/review"
)

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render the document to HTML with highlights and source spans",
		Long: `Render the document to HTML. Comment highlights become spans carrying
their comment id, and each block element is annotated with the source span
it was rendered from (when the rendered output still corresponds to the
source structure).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, err := opts.loadConfig(path)
			if err != nil {
				return err
			}

			doc, err := review.Load(cmd.Context(), path, cfg)
			if err != nil {
				return err
			}

			html, err := doc.RenderHTML()
			if err != nil {
				return err
			}

			if outputPath != "" {
				return fsutil.WriteAtomic(cmd.Context(), outputPath, []byte(html), 0)
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write HTML to this file instead of stdout")
	return cmd
}
