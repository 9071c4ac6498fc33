package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdreview/internal/ui/pretty"
	"github.com/yaklabco/mdreview/pkg/review"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List the document's review comments",
		Args:  cobra.ExactArgs(1),
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

			out := cmd.OutOrStdout()
			comments := doc.Comments()

			colorEnabled := pretty.IsColorEnabled(opts.color, out)
			styles := pretty.NewStyles(colorEnabled)

			if len(comments) == 0 {
				fmt.Fprintln(out, styles.Dim.Render("no comments"))
				return nil
			}

			rows := make([]pretty.TableRow, 0, len(comments))
			for _, c := range comments {
				rows = append(rows, pretty.CommentToTableRow(c, doc.Clean()))
			}

			formatter := pretty.NewTableFormatter(styles, colorEnabled, termWidth(out))
			fmt.Fprint(out, formatter.FormatTable(rows))
			return nil
		},
	}
}
