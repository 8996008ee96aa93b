package catalog

// Product is a base catalog entity as stored in the products table.
// Price fields are nullable: nil means the field is unset, a zero price is
// the "price on request" sentinel.
type Product struct {
	ID              int64     `json:"id"`
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Category        Category  `json:"category"`
	Price           *float64  `json:"price"`
	OldPrice        *float64  `json:"oldPrice"`
	DiscountPercent *float64  `json:"discountPercent"`
	Hit             bool      `json:"hit"`
	Popular         bool      `json:"popular"`
	Description     string    `json:"description"`
	Variants        []Variant `json:"variants"`
}

// Variant is a colored/material option of a product. Its numeric fields are
// independently nullable: nil means "no override, defer to the fallback
// policy", which is distinct from an explicit 0 ("price on request").
type Variant struct {
	Name            string   `json:"name"`
	Swatch          string   `json:"swatch"`
	Image           string   `json:"image"`
	Price           *float64 `json:"price"`
	OldPrice        *float64 `json:"oldPrice"`
	DiscountPercent *float64 `json:"discountPercent"`
	Hit             bool     `json:"hit"`
}

// ProductRef is the minimal projection used by the name uniqueness scan.
type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SelectedVariant returns the variant at idx, or nil when idx is out of
// range (including the conventional -1 for "base product selected").
func (p *Product) SelectedVariant(idx int) *Variant {
	if idx < 0 || idx >= len(p.Variants) {
		return nil
	}
	return &p.Variants[idx]
}
