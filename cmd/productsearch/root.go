package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"productsearch/internal/config"
	"productsearch/internal/logger"
)

// defaultConfigPath is used when --config is not given and the file exists.
const defaultConfigPath = "configs/productsearch.yaml"

// Command annotations controlling how much configuration loadRuntime requires.
const (
	// annotationNoConfig marks commands that run without loading configuration.
	annotationNoConfig = "productsearch/no-config"
	// annotationLocalOnly marks commands that never contact the backend, so
	// backend.base_url may be unset.
	annotationLocalOnly = "productsearch/local-only"
)

var (
	configPath string
	logLevel   string
	verbose    bool

	cfg    *config.Config
	appLog *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "productsearch",
	Short: "Search a product catalog from the terminal",
	Long: `productsearch sends free-text queries to a product search backend,
normalizes the loosely typed product records it returns and prints them
as a table, markdown or JSON.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML configuration file (default "+defaultConfigPath+" when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadRuntime loads configuration and builds the logger before any command
// runs. Commands annotated with annotationNoConfig only get a logger.
// Commands annotated with annotationLocalOnly skip the backend checks.
func loadRuntime(cmd *cobra.Command, _ []string) error {
	if logLevel != "" {
		if _, err := logger.LookupLevel(logLevel); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	if cmd.Annotations[annotationNoConfig] == "true" {
		appLog = logger.New(cmd.ErrOrStderr(), effectiveLevel("info"), "text")

		return nil
	}

	path := configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat %s: %w", defaultConfigPath, err)
		}
	}

	load := config.LoadConfig
	if cmd.Annotations[annotationLocalOnly] == "true" {
		load = config.LoadLocalConfig
	}

	loaded, err := load(path)
	if err != nil {
		return err
	}

	loaded.Logging.Level = effectiveLevel(loaded.Logging.Level)

	cfg = loaded
	appLog = logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	appLog.Debug("configuration loaded", "path", path, "config", cfg.String())

	return nil
}

func effectiveLevel(fallback string) string {
	switch {
	case verbose:
		return "debug"
	case logLevel != "":
		return logLevel
	default:
		return fallback
	}
}
