package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"productsearch/internal/models"
	"productsearch/internal/normalizer"
)

var (
	normalizeInput  string
	normalizeOutput string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize raw product records from a file",
	Long: `Reads a search response envelope ({"response": ..., "products": [...]})
or a bare array of raw product records and writes the normalized products
as JSON. No network access is needed. Use "-" to read from stdin.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoConfig: "true"},
	RunE:        runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInput, "input", "i", "", "input JSON file (required)")
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "output JSON file (default stdout)")
	_ = normalizeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	data, err := readInput(cmd, normalizeInput)
	if err != nil {
		return err
	}

	raws, err := decodeRawProducts(data)
	if err != nil {
		return err
	}

	products, rejected := normalizer.NewProcessor().Process(raws)
	for _, r := range rejected {
		appLog.Debug("dropping product record", "index", r.Index, "reason", r.Err)
	}

	out, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	out = append(out, '\n')

	appLog.Info("normalized products", "input", normalizeInput, "received", len(raws), "dropped", len(rejected))

	if normalizeOutput == "" {
		_, err := cmd.OutOrStdout().Write(out)

		return err
	}

	if err := os.MkdirAll(filepath.Dir(normalizeOutput), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(normalizeOutput, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	cmd.PrintErrf("Wrote %d products to %s\n", len(products), normalizeOutput)

	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return data, nil
}

var errUnsupportedInput = errors.New("input must be a JSON object with a products array or a JSON array")

// decodeRawProducts accepts a response envelope or a bare array.
func decodeRawProducts(data []byte) ([]models.RawProduct, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errUnsupportedInput
	}

	switch trimmed[0] {
	case '[':
		var raws []models.RawProduct
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("failed to decode products: %w", err)
		}

		return raws, nil
	case '{':
		var env models.SearchResponse
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		return env.Products, nil
	default:
		return nil, errUnsupportedInput
	}
}
