package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamenart/catalog-service/internal/database"
	"github.com/kamenart/catalog-service/internal/importer"
)

var importDryRun bool

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Apply an xlsx price list to the catalog",
	Long: `Apply an xlsx price list directly against the database. Each row
names a product slug and its new price fields; rows that fail to parse or
reference unknown slugs are reported and skipped.`,
	Example: `  catalogctl import ./prices.xlsx
  catalogctl import ./prices.xlsx --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without writing")
}

func runImport(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if importDryRun {
		rows, rowErrors, err := importer.Parse(content)
		if err != nil {
			return err
		}
		fmt.Printf("Parsed %d rows, %d errors\n", len(rows), len(rowErrors))
		reportRowErrors(rowErrors)
		return nil
	}

	store := database.NewProductStore(database.Pool())
	imp := importer.New(store, logger)

	result, err := imp.Import(context.Background(), content)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %d of %d rows\n", result.Updated, result.TotalRows)
	reportRowErrors(result.Errors)
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
	return nil
}

func reportRowErrors(rowErrors []importer.RowError) {
	if len(rowErrors) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tSLUG\tERROR")
	for _, e := range rowErrors {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Line, e.Slug, e.Message)
	}
	w.Flush()
}
