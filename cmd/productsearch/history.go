package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"productsearch/internal/formatter"
	"productsearch/internal/storage"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved searches",
	Long:        `Lists searches stored with "search --save", newest first.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationLocalOnly: "true"},
	RunE:        runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short:       "Show the products of a saved search",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationLocalOnly: "true"},
	RunE:        runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of searches to list (0 lists all)")
	historyShowCmd.Flags().StringVarP(&historyFormat, "format", "f", "", "output format: table, markdown, json (default from config)")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.ListSearches(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list searches: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No saved searches.")

		return nil
	}

	rows := [][]string{{"ID", "Fetched", "Query", "Products", "Dropped"}}
	for _, r := range records {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.FetchedAt.Local().Format(time.DateTime),
			r.Query,
			strconv.Itoa(r.ProductCount),
			strconv.Itoa(r.Dropped),
		})
	}

	return formatter.WriteColumns(cmd.OutOrStdout(), rows)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid search id %q: %w", args[0], err)
	}

	format := cfg.Output.Format
	if historyFormat != "" {
		format = historyFormat
	}

	if err := formatter.CheckFormat(format); err != nil {
		return err
	}

	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := db.GetSearch(cmd.Context(), id)
	if err != nil {
		return err
	}

	return formatter.Write(cmd.OutOrStdout(), format, results, cfg.Output.Width)
}
