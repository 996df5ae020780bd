package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from stored metadata",
	RunE:  runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, args []string) error {
	if err := librarySvc.Reindex(cmd.Context()); err != nil {
		return fmt.Errorf("reindexing: %w", err)
	}
	cmd.Println("Index rebuilt.")
	return nil
}
