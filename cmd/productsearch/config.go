package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"productsearch/internal/config"
)

var errConfigExists = errors.New("config file already exists (use --force to overwrite)")

var (
	configInitPath    string
	configInitBaseURL string
	configInitForce   bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a configuration file with default values",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoConfig: "true"},
	RunE:        runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short:       "Print the effective configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationLocalOnly: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Println(cfg.String())

		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", defaultConfigPath, "where to write the file")
	configInitCmd.Flags().StringVar(&configInitBaseURL, "base-url", "", "search backend base URL")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(configInitPath); err == nil && !configInitForce {
		return fmt.Errorf("%w: %s", errConfigExists, configInitPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", configInitPath, err)
	}

	c := config.Default()
	c.Backend.BaseURL = configInitBaseURL

	if c.Backend.BaseURL != "" {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(configInitPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := c.SaveConfig(configInitPath); err != nil {
		return err
	}

	cmd.Printf("Wrote %s\n", configInitPath)

	if c.Backend.BaseURL == "" {
		cmd.Printf("Set backend.base_url in the file or export %s before searching.\n", config.EnvBaseURL)
	}

	return nil
}
