// Package uniqueness implements the cross-category product name check used
// by the admin editor: debounced, logically cancelable, and failing open on
// any source error.
package uniqueness

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kamenart/catalog-service/internal/catalog"
)

// CategorySource lists catalog categories and their products. Both the
// database store and the remote catalog client implement it.
type CategorySource interface {
	Categories() []catalog.Category
	ProductsByCategory(ctx context.Context, cat catalog.Category) ([]catalog.ProductRef, error)
}

// Checker scans every catalog category sequentially for a case-insensitive
// name match. Uniqueness here is a UX nicety: a hard guarantee, if needed,
// belongs to the persistence layer.
type Checker struct {
	source CategorySource
	logger *zerolog.Logger
}

// NewChecker creates a checker over the given source.
func NewChecker(source CategorySource, logger *zerolog.Logger) *Checker {
	return &Checker{source: source, logger: logger}
}

// Check reports whether candidateName is unused across all categories.
// excludeID, when non-nil, exempts the record being edited. An empty or
// whitespace-only name is always unique (emptiness is validated elsewhere).
// Any source failure fails open and reports unique rather than blocking the
// operator.
func (c *Checker) Check(ctx context.Context, candidateName string, excludeID *int64) bool {
	normalized := catalog.NormalizeName(candidateName)
	if normalized == "" {
		return true
	}

	// Sequential on purpose: request volume stays bounded by the number of
	// categories, and the first match short-circuits the scan.
	for _, cat := range c.source.Categories() {
		refs, err := c.source.ProductsByCategory(ctx, cat)
		if err != nil {
			c.logger.Warn().Err(err).
				Str("category", string(cat)).
				Msg("Name check source failed, assuming unique")
			checksFailedOpen.Inc()
			return true
		}

		for _, ref := range refs {
			if catalog.NormalizeName(ref.Name) != normalized {
				continue
			}
			if excludeID != nil && ref.ID == *excludeID {
				continue
			}
			return false
		}
	}
	return true
}
