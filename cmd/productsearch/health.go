package main

import (
	"errors"

	"github.com/spf13/cobra"

	"productsearch/internal/health"
	"productsearch/internal/search"
)

var errUnhealthy = errors.New("backend is unhealthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the search backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	client, err := search.NewClient(cfg.Backend, appLog)
	if err != nil {
		return err
	}

	checker := health.NewChecker(client, appLog)
	if checker.Check(cmd.Context()) {
		cmd.Printf("%s is healthy\n", client.BaseURL())

		return nil
	}

	state := checker.State()
	cmd.Printf("%s is unhealthy: %s\n", client.BaseURL(), state.Err)

	return errUnhealthy
}
