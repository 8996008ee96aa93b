package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamenart/catalog-service/internal/catalog"
	"github.com/kamenart/catalog-service/internal/pkg/slugid"
	"github.com/kamenart/catalog-service/internal/pricing"
)

// ErrProductNotFound is returned when a lookup matches no product.
var ErrProductNotFound = errors.New("product not found")

// ProductStore reads and updates catalog products. It owns no derived state;
// display resolution happens in the display package on plain data.
type ProductStore struct {
	pool *pgxpool.Pool
}

// NewProductStore creates a store over the given pool.
func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `
	id, slug, name, category, price, old_price, discount_percent,
	hit, popular, description, variants, created_at, updated_at`

func scanProduct(row pgx.Row) (*ProductRow, error) {
	var p ProductRow
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Category, &p.Price, &p.OldPrice, &p.DiscountPercent,
		&p.Hit, &p.Popular, &p.Description, &p.Variants, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ToProduct converts a database row into the catalog entity, decoding the
// variants column defensively.
func (p *ProductRow) ToProduct() catalog.Product {
	variants := []catalog.Variant{}
	if p.Variants != nil {
		variants = catalog.DecodeVariantsString(*p.Variants)
	}
	return catalog.Product{
		ID:              p.ID,
		Slug:            p.Slug,
		Name:            p.Name,
		Category:        catalog.Category(p.Category),
		Price:           p.Price,
		OldPrice:        p.OldPrice,
		DiscountPercent: p.DiscountPercent,
		Hit:             p.Hit,
		Popular:         p.Popular,
		Description:     p.Description,
		Variants:        variants,
	}
}

// ListByCategory returns products of one category ordered by name, plus the
// total count for pagination.
func (s *ProductStore) ListByCategory(ctx context.Context, cat catalog.Category, limit, offset int) ([]catalog.Product, int, error) {
	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM products WHERE category = $1
	`, string(cat)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT`+productColumns+`
		FROM products
		WHERE category = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`, string(cat), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		row, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, row.ToProduct())
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", rows.Err())
	}

	return products, total, nil
}

// GetBySlug returns a single product by category and slug.
func (s *ProductStore) GetBySlug(ctx context.Context, cat catalog.Category, slug string) (*catalog.Product, error) {
	row, err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT`+productColumns+`
		FROM products
		WHERE category = $1 AND slug = $2
	`, string(cat), slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	p := row.ToProduct()
	return &p, nil
}

// GetByID returns a single product by id.
func (s *ProductStore) GetByID(ctx context.Context, id int64) (*catalog.Product, error) {
	row, err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT`+productColumns+`
		FROM products
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	p := row.ToProduct()
	return &p, nil
}

// UpdatePricing persists the admin editor's pricing projection for one
// product.
func (s *ProductStore) UpdatePricing(ctx context.Context, id int64, p pricing.PersistedPricing) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE products
		SET price = $2,
		    old_price = $3,
		    discount_percent = $4,
		    updated_at = NOW()
		WHERE id = $1
	`, id, p.Price, p.OldPrice, p.DiscountPercent)
	if err != nil {
		return fmt.Errorf("failed to update pricing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// UpdatePricingBySlug is UpdatePricing keyed by slug, for the xlsx importer.
func (s *ProductStore) UpdatePricingBySlug(ctx context.Context, slug string, p pricing.PersistedPricing) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE products
		SET price = $2,
		    old_price = $3,
		    discount_percent = $4,
		    updated_at = NOW()
		WHERE slug = $1
	`, slug, p.Price, p.OldPrice, p.DiscountPercent)
	if err != nil {
		return fmt.Errorf("failed to update pricing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Categories implements uniqueness.CategorySource.
func (s *ProductStore) Categories() []catalog.Category {
	return catalog.Categories()
}

// ProductsByCategory implements uniqueness.CategorySource with the minimal
// id+name projection.
func (s *ProductStore) ProductsByCategory(ctx context.Context, cat catalog.Category) ([]catalog.ProductRef, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name FROM products WHERE category = $1
	`, string(cat))
	if err != nil {
		return nil, fmt.Errorf("failed to query product names: %w", err)
	}
	defer rows.Close()

	refs := []catalog.ProductRef{}
	for rows.Next() {
		var ref catalog.ProductRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan product ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product refs: %w", rows.Err())
	}
	return refs, nil
}

// LegacySentinelProduct is a record that encodes price-on-request only in
// its description text, surfaced by the sweeper as a migration candidate.
type LegacySentinelProduct struct {
	ID       int64
	Slug     string
	Category string
}

// ListLegacySentinelProducts finds products whose description carries one of
// the legacy sentinel phrases while still storing a positive price.
func (s *ProductStore) ListLegacySentinelProducts(ctx context.Context) ([]LegacySentinelProduct, error) {
	phrases := catalog.LegacySentinelPhrases()
	conds := make([]string, len(phrases))
	args := make([]interface{}, len(phrases))
	for i, phrase := range phrases {
		conds[i] = fmt.Sprintf("description ILIKE $%d", i+1)
		args[i] = "%" + phrase + "%"
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, slug, category
		FROM products
		WHERE price IS NOT NULL AND price > 0
		  AND (`+strings.Join(conds, " OR ")+`)
		ORDER BY id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy sentinel products: %w", err)
	}
	defer rows.Close()

	out := []LegacySentinelProduct{}
	for rows.Next() {
		var p LegacySentinelProduct
		if err := rows.Scan(&p.ID, &p.Slug, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan legacy sentinel product: %w", err)
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating legacy sentinel products: %w", rows.Err())
	}
	return out, nil
}

// CreateProduct inserts a product; the variants slice is stored JSON-encoded.
// A slug collision is retried once with a random suffix.
func (s *ProductStore) CreateProduct(ctx context.Context, p catalog.Product) (int64, error) {
	variants, err := json.Marshal(p.Variants)
	if err != nil {
		return 0, fmt.Errorf("failed to encode variants: %w", err)
	}

	id, err := s.insertProduct(ctx, p, string(variants))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			p.Slug = slugid.Suffix(p.Slug)
			return s.insertProduct(ctx, p, string(variants))
		}
		return 0, err
	}
	return id, nil
}

func (s *ProductStore) insertProduct(ctx context.Context, p catalog.Product, variants string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO products (slug, name, category, price, old_price, discount_percent,
		                      hit, popular, description, variants, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id
	`, p.Slug, p.Name, string(p.Category), p.Price, p.OldPrice, p.DiscountPercent,
		p.Hit, p.Popular, p.Description, variants).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return id, nil
}
