// Package display resolves which price, old price and badges to show for a
// product and its currently selected variant.
package display

import (
	"math"

	"github.com/kamenart/catalog-service/internal/catalog"
)

// ResolvedPrices is the outcome of the variant fallback cascade.
type ResolvedPrices struct {
	Price           *float64 `json:"price"`
	OldPrice        *float64 `json:"oldPrice"`
	DiscountPercent *float64 `json:"discountPercent"`
}

// ResolvedDisplayState is the full derived display state for one selection.
// It is computed fresh on every selection change and never cached.
type ResolvedDisplayState struct {
	EffectivePrice           *float64 `json:"effectivePrice"`
	EffectiveOldPrice        *float64 `json:"effectiveOldPrice"`
	EffectiveDiscountPercent int      `json:"effectiveDiscountPercent"`
	ShowDiscountBadge        bool     `json:"showDiscountBadge"`
	ShowHitBadge             bool     `json:"showHitBadge"`
	IsPriceOnRequest         bool     `json:"isPriceOnRequest"`
}

// ResolvePrices runs the fallback cascade for a product and the selected
// variant (nil when the base product is selected). Branches are evaluated in
// strict order; the first match wins.
func ResolvePrices(p *catalog.Product, selected *catalog.Variant) ResolvedPrices {
	out := ResolvedPrices{}

	if selected != nil && selected.Price != nil {
		out.Price = selected.Price
	} else {
		out.Price = p.Price
	}

	switch {
	case len(p.Variants) == 0:
		// No variants exist; base fields apply unconditionally.
		out.OldPrice = p.OldPrice
		out.DiscountPercent = p.DiscountPercent

	case selected != nil && selected.OldPrice != nil:
		// A variant with its own reference price is authoritative, even if
		// its discount field is nil. No further fallback.
		out.OldPrice = selected.OldPrice
		out.DiscountPercent = selected.DiscountPercent

	case p.Category.Policy() == catalog.PolicyIndependentVariants:
		// Independently priced variants: a base-level sale must not leak
		// onto a variant that declares no discount of its own.

	default:
		out.OldPrice = p.OldPrice
		out.DiscountPercent = p.DiscountPercent
	}

	return out
}

// Resolve computes the complete display state for a selection.
func Resolve(p *catalog.Product, selected *catalog.Variant) ResolvedDisplayState {
	prices := ResolvePrices(p, selected)

	state := ResolvedDisplayState{
		EffectivePrice:    prices.Price,
		EffectiveOldPrice: prices.OldPrice,
	}

	state.IsPriceOnRequest = prices.Price == nil || *prices.Price == 0 ||
		catalog.HasLegacySentinelText(p.Description)

	// A price-on-request state carries no prices at all; either a concrete
	// price renders or "on request" does, never both.
	legacyHit := false
	if state.IsPriceOnRequest {
		legacyHit = prices.Price != nil && *prices.Price > 0
		state.EffectivePrice = nil
		state.EffectiveOldPrice = nil
	} else {
		state.EffectiveDiscountPercent = badgePercent(prices)
		state.ShowDiscountBadge = shouldShowDiscount(prices)
	}
	state.ShowHitBadge = resolveHitBadge(p, selected)

	recordResolution(p, state, legacyHit)
	return state
}

// shouldShowDiscount reports whether a discount badge renders: an explicit
// positive percent, or consistent old/new prices without a stored percent.
func shouldShowDiscount(r ResolvedPrices) bool {
	if r.DiscountPercent != nil && *r.DiscountPercent > 0 {
		return true
	}
	return r.Price != nil && *r.Price > 0 &&
		r.OldPrice != nil && *r.OldPrice > *r.Price
}

// badgePercent prefers the explicit stored percent; otherwise it derives one
// from the price pair.
func badgePercent(r ResolvedPrices) int {
	if r.DiscountPercent != nil && *r.DiscountPercent > 0 {
		return int(math.Round(*r.DiscountPercent))
	}
	if r.Price != nil && *r.Price > 0 && r.OldPrice != nil && *r.OldPrice > *r.Price {
		return int(math.Round((*r.OldPrice - *r.Price) / *r.OldPrice * 100))
	}
	return 0
}

// resolveHitBadge applies the category-keyed hit rule: independently priced
// variants carry their own hit flag and never inherit the base product's;
// every other category shows the base product's flag only.
func resolveHitBadge(p *catalog.Product, selected *catalog.Variant) bool {
	if p.Category.Policy() == catalog.PolicyIndependentVariants {
		return selected != nil && selected.Hit
	}
	return p.Hit
}
