package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [hash]",
	Short: "Delete a file from the library",
	Long:  `Removes the file's record, stored bytes and index entries.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := librarySvc.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting %s: %w", args[0], err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
