// Package importer applies xlsx price lists to the catalog. Each row is
// replayed through the pricing engine exactly as an operator's edits would
// be, so imported triples obey the same consistency rules as manual ones.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/kamenart/catalog-service/internal/pricing"
)

// PricingWriter persists one row's projection. Satisfied by
// database.ProductStore.
type PricingWriter interface {
	UpdatePricingBySlug(ctx context.Context, slug string, p pricing.PersistedPricing) error
}

// Row is one parsed price-list line.
type Row struct {
	Line           int
	Slug           string
	Price          string
	OldPrice       string
	Discount       string
	PriceOnRequest bool
}

// RowError records a non-fatal per-row failure.
type RowError struct {
	Line    int    `json:"line"`
	Slug    string `json:"slug,omitempty"`
	Message string `json:"message"`
}

// Result summarizes an import run.
type Result struct {
	TotalRows int        `json:"totalRows"`
	Updated   int        `json:"updated"`
	Errors    []RowError `json:"errors"`
}

// columnIndex maps recognized header names to Row fields.
var headerAliases = map[string]string{
	"slug":             "slug",
	"price":            "price",
	"old_price":        "old_price",
	"oldprice":         "old_price",
	"discount":         "discount",
	"discount_percent": "discount",
	"on_request":       "on_request",
	"price_on_request": "on_request",
}

// Parse reads the first sheet of an xlsx price list. A missing or
// unrecognized header is fatal; individual bad rows are not.
func Parse(content []byte) ([]Row, []RowError, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	columns := map[string]int{}
	for i, cell := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(cell))
		if field, ok := headerAliases[name]; ok {
			columns[field] = i
		}
	}
	if _, ok := columns["slug"]; !ok {
		return nil, nil, fmt.Errorf("price list is missing a slug column")
	}
	if _, ok := columns["price"]; !ok {
		return nil, nil, fmt.Errorf("price list is missing a price column")
	}

	cell := func(row []string, field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var parsed []Row
	var rowErrors []RowError
	for i, raw := range rows[1:] {
		line := i + 2 // 1-based, after the header
		if isEmptyRow(raw) {
			continue
		}

		r := Row{
			Line:     line,
			Slug:     cell(raw, "slug"),
			Price:    cell(raw, "price"),
			OldPrice: cell(raw, "old_price"),
			Discount: cell(raw, "discount"),
		}
		r.PriceOnRequest = isTruthy(cell(raw, "on_request"))

		if r.Slug == "" {
			rowErrors = append(rowErrors, RowError{Line: line, Message: "missing slug"})
			continue
		}
		parsed = append(parsed, r)
	}

	return parsed, rowErrors, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "да":
		return true
	}
	return false
}

// FormState replays one row through the pricing engine in editor order:
// reference price first, then price, then an explicit discount only when no
// reference price was given (a discount edit would re-derive and clobber an
// explicit one).
func (r Row) FormState() pricing.FormPriceState {
	if r.PriceOnRequest {
		return pricing.SetPriceOnRequest(pricing.FormPriceState{}, true)
	}

	state := pricing.FormPriceState{}
	if r.OldPrice != "" {
		state = pricing.ApplyEdit(state, pricing.FieldOldPrice, r.OldPrice)
	}
	state = pricing.ApplyEdit(state, pricing.FieldPrice, r.Price)
	if r.Discount != "" && r.OldPrice == "" {
		state = pricing.ApplyEdit(state, pricing.FieldDiscountPercent, pricing.ClampDiscountInput(r.Discount))
	}
	return state
}

// Importer applies parsed price lists through a PricingWriter.
type Importer struct {
	writer PricingWriter
	logger *zerolog.Logger
}

// New creates an importer writing through writer.
func New(writer PricingWriter, logger *zerolog.Logger) *Importer {
	return &Importer{writer: writer, logger: logger}
}

// Import parses and applies an xlsx price list. Per-row failures, including
// unknown slugs, are collected and never abort the run.
func (im *Importer) Import(ctx context.Context, content []byte) (*Result, error) {
	rows, rowErrors, err := Parse(content)
	if err != nil {
		return nil, err
	}

	result := &Result{
		TotalRows: len(rows) + len(rowErrors),
		Errors:    rowErrors,
	}

	for _, row := range rows {
		projection := pricing.Persisted(row.FormState())
		if err := im.writer.UpdatePricingBySlug(ctx, row.Slug, projection); err != nil {
			im.logger.Warn().Err(err).Str("slug", row.Slug).Int("line", row.Line).Msg("Price row failed")
			result.Errors = append(result.Errors, RowError{Line: row.Line, Slug: row.Slug, Message: err.Error()})
			continue
		}
		result.Updated++
	}

	im.logger.Info().
		Int("rows", result.TotalRows).
		Int("updated", result.Updated).
		Int("errors", len(result.Errors)).
		Msg("Price list import finished")
	return result, nil
}
