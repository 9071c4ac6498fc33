package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdreview/pkg/comment"
	"github.com/yaklabco/mdreview/pkg/review"
)

func newAddCommand(opts *rootOptions) *cobra.Command {
	var (
		from        int
		to          int
		commentType string
		text        string
	)

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a review comment to a span of the document",
		Long: `Add a review comment anchored to [--from, --to) of the document's clean
content (offsets as shown by "mdreview list" and the rendered preview).
The comment is embedded in the file as HTML comment markers.`,
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

			c, err := doc.Add(from, to, comment.Type(commentType), text)
			if err != nil {
				return err
			}
			if err := doc.Save(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), c.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "start offset of the highlighted span")
	cmd.Flags().IntVar(&to, "to", 0, "end offset of the highlighted span (exclusive)")
	cmd.Flags().StringVar(&commentType, "type", string(comment.TypeInline),
		"comment type: inline or line")
	cmd.Flags().StringVar(&text, "text", "", "comment text")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
