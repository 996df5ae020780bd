package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mediadex/mediadex/internal/core/domain"
)

var ingestKind string

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest files into the library",
	Long: `Reads each file, extracts its text and makes it searchable.
The media kind is inferred from the extension unless --kind is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestKind, "kind", "k", "", "media kind (document, video, audio)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		name := filepath.Base(path)

		kind, err := resolveKind(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		summary, err := ingestSvc.Ingest(cmd.Context(), kind, name, content)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", name, err)
		}

		cmd.Printf("%s  %s  kind=%s status=%s chunks=%d\n",
			summary.Hash[:12], summary.Name, summary.Kind, summary.Status, summary.ChunkCount)
	}
	return nil
}

// resolveKind uses the --kind flag when present, the extension otherwise.
func resolveKind(filename string) (domain.FileKind, error) {
	if ingestKind != "" {
		return domain.ParseFileKind(ingestKind)
	}
	kind, ok := domain.KindForExtension(filename)
	if !ok {
		return "", fmt.Errorf("%w: cannot infer kind, pass --kind", domain.ErrUnsupportedKind)
	}
	return kind, nil
}
