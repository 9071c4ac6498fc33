package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdreview/pkg/review"
)

func newStripCommand(opts *rootOptions) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "strip <file>",
		Short: "Strip review comments from the document",
		Long: `Strip review markers from the document, leaving clean Markdown. With
--id only that comment is stripped; by default all comments are removed.`,
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

			if id != "" {
				if err := doc.Remove(id); err != nil {
					return err
				}
				if err := doc.Save(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "stripped 1 comment")
				return nil
			}

			n := doc.StripAll()
			if err := doc.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stripped %d comments\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "strip only the comment with this id")
	return cmd
}
