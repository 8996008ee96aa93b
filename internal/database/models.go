package database

import (
	"time"
)

// ProductRow is a product record as stored in the products table. The
// variants column is kept as raw text and decoded defensively by the catalog
// package; a malformed column never fails a read.
type ProductRow struct {
	ID              int64     `json:"id"`
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Price           *float64  `json:"price"`            // nil = unset, 0 = price on request
	OldPrice        *float64  `json:"old_price"`        // reference price for markdowns
	DiscountPercent *float64  `json:"discount_percent"` // stored percent, may be absent
	Hit             bool      `json:"hit"`
	Popular         bool      `json:"popular"`
	Description     string    `json:"description"`
	Variants        *string   `json:"variants"` // JSON-encoded variant array
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
