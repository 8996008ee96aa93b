package catalog

// Category identifies a catalog section. The set is fixed; records with an
// unknown category are treated as ordinary (inherit-base) products.
type Category string

const (
	CategorySingle    Category = "single"
	CategoryDouble    Category = "double"
	CategoryFamily    Category = "family"
	CategoryComplex   Category = "complex"
	CategoryExclusive Category = "exclusive"
)

// Categories lists all catalog categories in scan order. The uniqueness
// checker walks them sequentially, so the order is part of its contract.
func Categories() []Category {
	return []Category{
		CategorySingle,
		CategoryDouble,
		CategoryFamily,
		CategoryComplex,
		CategoryExclusive,
	}
}

// IsValidCategory reports whether slug names a known category.
func IsValidCategory(slug string) bool {
	for _, c := range Categories() {
		if string(c) == slug {
			return true
		}
	}
	return false
}

// CategoryPolicy controls how a variant with no declared reference price
// falls back to the base product during price resolution.
type CategoryPolicy int

const (
	// PolicyInheritBase: a variant without its own old price inherits the
	// base product's old price and discount.
	PolicyInheritBase CategoryPolicy = iota
	// PolicyIndependentVariants: variants are priced independently, a
	// base-level discount never leaks onto a variant that declares none.
	PolicyIndependentVariants
)

// Policy resolves the fallback policy for a category. Resolved once per
// product and threaded through both the price resolver and the badge
// resolver so the two cannot drift apart.
func (c Category) Policy() CategoryPolicy {
	if c == CategoryExclusive {
		return PolicyIndependentVariants
	}
	return PolicyInheritBase
}
