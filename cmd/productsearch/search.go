package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"productsearch/internal/export"
	"productsearch/internal/formatter"
	"productsearch/internal/search"
	"productsearch/internal/storage"
)

var (
	searchLimit  int
	searchFormat string
	searchXLSX   string
	searchSave   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the product catalog",
	Long: `Sends the query to the search backend and prints the normalized products.
Records without an id or url, or with nothing to display, are dropped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of products to show (0 shows all, default from config)")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", "", "output format: table, markdown, json (default from config)")
	searchCmd.Flags().StringVar(&searchXLSX, "xlsx", "", "also export the products to this XLSX file")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "store a snapshot of the results in the local database")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	limit := cfg.Search.Limit
	if cmd.Flags().Changed("limit") {
		limit = searchLimit
	}

	format := cfg.Output.Format
	if searchFormat != "" {
		format = searchFormat
	}

	if err := formatter.CheckFormat(format); err != nil {
		return err
	}

	client, err := search.NewClient(cfg.Backend, appLog)
	if err != nil {
		return err
	}

	svc := search.NewService(client, appLog, search.WithLimit(limit))

	results, err := svc.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if err := formatter.Write(cmd.OutOrStdout(), format, results, cfg.Output.Width); err != nil {
		return err
	}

	if searchXLSX != "" {
		if err := export.ToXLSX(results.Products, searchXLSX); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		cmd.PrintErrf("Exported %d products to %s\n", len(results.Products), searchXLSX)
	}

	if searchSave {
		db, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := db.SaveSearch(cmd.Context(), results)
		if err != nil {
			return fmt.Errorf("failed to save search: %w", err)
		}

		cmd.PrintErrf("Saved search #%d to %s\n", id, cfg.Storage.Path)
	}

	return nil
}
