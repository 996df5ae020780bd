package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listKind string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested files",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "restrict to a media kind")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	kind, err := parseKindFlag(listKind)
	if err != nil {
		return err
	}

	summaries, err := librarySvc.List(cmd.Context(), kind)
	if err != nil {
		return fmt.Errorf("listing files: %w", err)
	}

	if len(summaries) == 0 {
		cmd.Println("No files ingested.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HASH\tNAME\tKIND\tSIZE\tSTATUS\tCHUNKS\tUPLOADED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%s\n",
			s.Hash[:12], s.Name, s.Kind, s.Size, s.Status, s.ChunkCount,
			s.UploadedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
