// Package cli implements the command line interface using cobra.
// Commands talk to the core through the driving ports; the concrete
// services are wired once before any command runs.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediadex/mediadex/internal/adapters/driven/blob"
	configfile "github.com/mediadex/mediadex/internal/adapters/driven/config/file"
	"github.com/mediadex/mediadex/internal/adapters/driven/storage/sqlite"
	"github.com/mediadex/mediadex/internal/chunker"
	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
	"github.com/mediadex/mediadex/internal/core/ports/driving"
	"github.com/mediadex/mediadex/internal/core/services"
	"github.com/mediadex/mediadex/internal/extractors"
	"github.com/mediadex/mediadex/internal/extractors/audio"
	"github.com/mediadex/mediadex/internal/extractors/docx"
	"github.com/mediadex/mediadex/internal/extractors/pdf"
	"github.com/mediadex/mediadex/internal/extractors/plaintext"
	"github.com/mediadex/mediadex/internal/extractors/video"
	"github.com/mediadex/mediadex/internal/index"
	"github.com/mediadex/mediadex/internal/logger"
	"github.com/mediadex/mediadex/internal/transcribe"
)

var (
	verbose   bool
	configDir string

	cfg        configfile.Config
	store      *sqlite.Store
	ingestSvc  driving.IngestService
	librarySvc driving.LibraryService
	searchSvc  driving.SearchService
)

var rootCmd = &cobra.Command{
	Use:   "mediadex",
	Short: "Multimodal media indexing and search",
	Long: `mediadex ingests documents, video and audio, extracts their text
and serves ranked keyword search over everything it has seen.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.mediadex)")
}

// setup wires the service graph from configuration.
// Version runs without it so the binary can identify itself even when
// the data directory is unusable.
func setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	var err error
	cfg, err = configfile.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err = sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	blobs := blob.NewStore(cfg.DataDir)
	ix := index.New()

	var transcriber driven.Transcriber = transcribe.NewNull()
	if cfg.WhisperBin != "" {
		transcriber = transcribe.NewWhisper(cfg.WhisperBin)
	}

	registry := extractors.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(pdf.New())
	registry.Register(docx.New())
	registry.Register(video.New(transcriber))
	registry.Register(audio.New(transcriber))

	ingestSvc = services.NewIngestService(
		registry,
		chunker.New(chunker.WithBudget(cfg.ChunkBudget)),
		store, blobs, ix,
		services.WithMaxUploadBytes(cfg.MaxUploadBytes),
	)
	librarySvc = services.NewLibraryService(store, blobs, ix)
	searchSvc = services.NewSearchService(store, ix)

	// The in-memory index starts empty on every run.
	if err := librarySvc.Reindex(cmd.Context()); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	return nil
}

// parseKindFlag turns an optional --kind value into a filter.
func parseKindFlag(value string) (domain.FileKind, error) {
	if value == "" {
		return "", nil
	}
	return domain.ParseFileKind(value)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
