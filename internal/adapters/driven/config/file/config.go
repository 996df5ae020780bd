// Package file loads and saves the TOML configuration file.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the runtime configuration.
type Config struct {
	// DataDir is the root directory for the database and blobs.
	DataDir string `toml:"data_dir"`

	// ChunkBudget is the maximum chunk size in runes.
	ChunkBudget int `toml:"chunk_budget"`

	// MaxUploadBytes caps the accepted upload size.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`

	// WhisperBin is the transcription CLI binary name or path.
	// Empty disables transcription.
	WhisperBin string `toml:"whisper_bin"`

	// HTTPAddr is the listen address for the HTTP server.
	HTTPAddr string `toml:"http_addr"`

	// WatchIngestPerSecond rate-limits watcher-triggered ingestion.
	WatchIngestPerSecond float64 `toml:"watch_ingest_per_second"`
}

// Default returns the configuration defaults, rooted under the user
// home directory.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:              filepath.Join(home, ".mediadex", "data"),
		ChunkBudget:          800,
		MaxUploadBytes:       100 << 20,
		HTTPAddr:             "127.0.0.1:8080",
		WatchIngestPerSecond: 2,
	}
}

// Path returns the config file path inside configDir, defaulting to
// ~/.mediadex/config.toml.
func Path(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".mediadex")
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads the config file, layering it over the defaults.
// A missing file yields the defaults.
func Load(configDir string) (Config, error) {
	cfg := Default()

	path, err := Path(configDir)
	if err != nil {
		return cfg, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(configDir string, cfg Config) error {
	path, err := Path(configDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	raw, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
