package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdreview/pkg/review"
)

func newRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file> <id>",
		Short: "Remove a review comment by id",
		Long: `Remove one review comment from the document. Both markers are stripped;
the previously highlighted text stays in place.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, id := args[0], args[1]

			cfg, err := opts.loadConfig(path)
			if err != nil {
				return err
			}

			doc, err := review.Load(cmd.Context(), path, cfg)
			if err != nil {
				return err
			}

			if err := doc.Remove(id); err != nil {
				return err
			}
			return doc.Save(cmd.Context())
		},
	}
}
