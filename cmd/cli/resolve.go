package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamenart/catalog-service/internal/catalog"
	"github.com/kamenart/catalog-service/internal/database"
	"github.com/kamenart/catalog-service/internal/display"
)

var (
	resolveCategory string
	resolveOutput   string
	resolveFile     string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [slug]",
	Short: "Resolve display prices for a product",
	Long: `Resolve the effective price, old price, discount and badges for a
product and each of its variants, the same way the storefront renders them.

By default the product is fetched from the database by category and slug.
With --product the product is read from a JSON file instead and no database
connection is needed.`,
	Example: `  catalogctl resolve odinochnyj-o-1 --category single
  catalogctl resolve eksklyuzivnyj-e-1 --category exclusive --output json
  catalogctl resolve --product product.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveCategory, "category", "", "Product category (required unless --product is given)")
	resolveCmd.Flags().StringVar(&resolveOutput, "output", "table", "Output format: table or json")
	resolveCmd.Flags().StringVar(&resolveFile, "product", "", "Resolve a product from a JSON file instead of the database")
}

type resolvedSelection struct {
	Selection string                       `json:"selection"`
	Display   display.ResolvedDisplayState `json:"display"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	var product *catalog.Product

	if resolveFile != "" {
		var err error
		product, err = loadProductFile(resolveFile)
		if err != nil {
			return err
		}
	} else {
		if len(args) != 1 {
			return fmt.Errorf("a product slug is required unless --product is given")
		}
		if !catalog.IsValidCategory(resolveCategory) {
			names := make([]string, 0)
			for _, c := range catalog.Categories() {
				names = append(names, string(c))
			}
			return fmt.Errorf("invalid category: %s\nValid categories: %s", resolveCategory, strings.Join(names, ", "))
		}

		store := database.NewProductStore(database.Pool())
		var err error
		product, err = store.GetBySlug(context.Background(), catalog.Category(resolveCategory), args[0])
		if err != nil {
			return fmt.Errorf("failed to fetch product: %w", err)
		}
	}

	selections := []resolvedSelection{
		{Selection: "base", Display: display.Resolve(product, nil)},
	}
	for i := range product.Variants {
		selections = append(selections, resolvedSelection{
			Selection: product.Variants[i].Name,
			Display:   display.Resolve(product, &product.Variants[i]),
		})
	}

	if resolveOutput == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(selections)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SELECTION\tPRICE\tOLD PRICE\tDISCOUNT\tBADGES")
	for _, s := range selections {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.Selection,
			formatPrice(s.Display.EffectivePrice, s.Display.IsPriceOnRequest),
			formatPrice(s.Display.EffectiveOldPrice, false),
			formatDiscount(s.Display),
			formatBadges(s.Display),
		)
	}
	return w.Flush()
}

func loadProductFile(path string) (*catalog.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product file: %w", err)
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to parse product file: %w", err)
	}
	if product.Category != "" && !catalog.IsValidCategory(string(product.Category)) {
		return nil, fmt.Errorf("invalid category in product file: %s", product.Category)
	}
	return &product, nil
}

func formatPrice(p *float64, onRequest bool) string {
	if onRequest {
		return "on request"
	}
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f", *p)
}

func formatDiscount(d display.ResolvedDisplayState) string {
	if !d.ShowDiscountBadge {
		return "-"
	}
	return fmt.Sprintf("-%d%%", d.EffectiveDiscountPercent)
}

func formatBadges(d display.ResolvedDisplayState) string {
	badges := make([]string, 0, 2)
	if d.ShowHitBadge {
		badges = append(badges, "hit")
	}
	if d.ShowDiscountBadge {
		badges = append(badges, "discount")
	}
	if len(badges) == 0 {
		return "-"
	}
	return strings.Join(badges, ",")
}
