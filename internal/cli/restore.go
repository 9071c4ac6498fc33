package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdreview/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the document from its pre-review backup",
		Long: `Restore the document from the sidecar backup created before its first
in-place edit (requires backups to be enabled in the configuration).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			restored, err := fsutil.RestoreBackup(cmd.Context(), path)
			if err != nil {
				return err
			}
			if !restored {
				return fmt.Errorf("no backup exists for %s", path)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "restored")
			return nil
		},
	}
}
