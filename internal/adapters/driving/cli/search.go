package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mediadex/mediadex/internal/core/domain"
)

var (
	searchKind  string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the library",
	Long: `Runs a keyword search over everything ingested.
Results covering more of the query terms rank first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "", "restrict to a media kind")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	kind, err := parseKindFlag(searchKind)
	if err != nil {
		return err
	}

	results, err := searchSvc.Search(cmd.Context(), args[0], domain.QueryOptions{
		Kind:  kind,
		Limit: searchLimit,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Print(formatResults(results))
	return nil
}

// formatResults renders results for the terminal.
func formatResults(results []domain.QueryResult) string {
	if len(results) == 0 {
		return "No results found.\n"
	}

	title := color.New(color.Bold)
	meta := color.New(color.FgCyan)
	timing := color.New(color.FgYellow)

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s  %s\n", i+1,
			title.Sprint(r.File.Name),
			meta.Sprintf("[%s] score=%.2f", r.File.Kind, r.Score))

		if r.Chunk != nil && r.Chunk.Timed {
			fmt.Fprintf(&b, "   %s\n", timing.Sprintf("%s - %s",
				formatOffset(r.Chunk.StartSec), formatOffset(r.Chunk.EndSec)))
		}
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatOffset renders a media offset as m:ss.
func formatOffset(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
