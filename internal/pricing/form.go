// Package pricing keeps the three interdependent admin form fields (price,
// old price, discount percent) arithmetically consistent as the operator
// edits any one of them.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Field names an editable member of FormPriceState.
type Field string

const (
	FieldPrice           Field = "price"
	FieldOldPrice        Field = "oldPrice"
	FieldDiscountPercent Field = "discountPercent"
)

// MaxDiscountPercent is the upper bound the admin form clamps the discount
// input control to. Raw values above it are accepted for display but never
// reach persistence uncapped.
const MaxDiscountPercent = 99

// FormPriceState mirrors raw admin form input. Fields are strings so that a
// half-typed value like "12." survives a recompute verbatim; conversion to
// numbers happens only inside this package.
type FormPriceState struct {
	Price           string `json:"price"`
	OldPrice        string `json:"oldPrice"`
	DiscountPercent string `json:"discountPercent"`
	PriceOnRequest  bool   `json:"priceOnRequest"`
}

// PersistedPricing is the projection of FormPriceState accepted by the admin
// write endpoint. Price-on-request persists as price=0 with the other two
// fields null.
type PersistedPricing struct {
	Price           float64  `json:"price"`
	OldPrice        *float64 `json:"oldPrice"`
	DiscountPercent *float64 `json:"discountPercent"`
}

// parseAmount converts raw form input to a number for computation. Anything
// that does not parse to a finite number counts as zero; the raw string is
// kept for display by the caller.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ApplyEdit applies a single-field edit and recomputes the dependent fields
// so the triple stays consistent. The edited field always stores rawValue
// verbatim. Any numeric edit implicitly opts out of price-on-request.
func ApplyEdit(state FormPriceState, field Field, rawValue string) FormPriceState {
	next := state
	next.PriceOnRequest = false

	switch field {
	case FieldPrice:
		next.Price = rawValue
		price := parseAmount(rawValue)
		oldPrice := parseAmount(next.OldPrice)
		if d, ok := discountFor(price, oldPrice); ok {
			next.DiscountPercent = formatAmount(d)
		}

	case FieldOldPrice:
		next.OldPrice = rawValue
		oldPrice := parseAmount(rawValue)
		price := parseAmount(next.Price)
		if d, ok := discountFor(price, oldPrice); ok {
			next.DiscountPercent = formatAmount(d)
		}

	case FieldDiscountPercent:
		next.DiscountPercent = rawValue
		discount := parseAmount(rawValue)
		price := parseAmount(next.Price)
		switch {
		case discount <= 0:
			next.OldPrice = ""
		case price > 0 && discount < 100:
			next.OldPrice = formatAmount(math.Round(price * 100 / (100 - discount)))
		}
	}

	return next
}

// discountFor derives the discount percent for a price/oldPrice pair. The
// second return is false when the pair gives no basis to touch the stored
// discount (no positive old price).
func discountFor(price, oldPrice float64) (float64, bool) {
	if oldPrice <= 0 {
		return 0, false
	}
	if price > 0 && oldPrice > price {
		return math.Round((oldPrice - price) / oldPrice * 100), true
	}
	if price >= oldPrice {
		// Never store a negative or zero-width discount.
		return 0, true
	}
	// Price is unset; leave the stored discount alone.
	return 0, false
}

// SetPriceOnRequest toggles the explicit price-on-request flag. Turning it
// on blanks all three numeric fields.
func SetPriceOnRequest(state FormPriceState, on bool) FormPriceState {
	next := state
	next.PriceOnRequest = on
	if on {
		next.Price = ""
		next.OldPrice = ""
		next.DiscountPercent = ""
	}
	return next
}

// ClampDiscountInput bounds a raw discount percentage to the form control's
// valid range [0, MaxDiscountPercent].
func ClampDiscountInput(raw string) string {
	v := parseAmount(raw)
	if v < 0 {
		return "0"
	}
	if v > MaxDiscountPercent {
		return strconv.Itoa(MaxDiscountPercent)
	}
	return raw
}

// Persisted projects the form state for the admin write endpoint.
// The discount is capped here so an uncapped raw value can never reach
// persistence.
func Persisted(state FormPriceState) PersistedPricing {
	if state.PriceOnRequest {
		return PersistedPricing{Price: 0}
	}

	out := PersistedPricing{Price: parseAmount(state.Price)}

	if oldPrice := parseAmount(state.OldPrice); oldPrice > 0 {
		out.OldPrice = &oldPrice
	}
	if discount := parseAmount(state.DiscountPercent); discount > 0 {
		if discount > MaxDiscountPercent {
			discount = MaxDiscountPercent
		}
		out.DiscountPercent = &discount
	}
	return out
}
