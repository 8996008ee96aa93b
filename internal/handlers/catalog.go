package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamenart/catalog-service/internal/catalog"
	"github.com/kamenart/catalog-service/internal/database"
	"github.com/kamenart/catalog-service/internal/display"
)

// ListCatalogRequest represents query parameters for a category listing
type ListCatalogRequest struct {
	Limit  int `form:"limit" binding:"min=0,max=500"`
	Offset int `form:"offset" binding:"min=0"`
}

// CatalogProduct is a product together with its base-selection display state
type CatalogProduct struct {
	catalog.Product
	Display display.ResolvedDisplayState `json:"display"`
}

// ListCatalogResponse represents the response for a category listing
type ListCatalogResponse struct {
	Products []CatalogProduct `json:"products"`
	Total    int              `json:"total"`
	Category string           `json:"category"`
}

// ListCatalog returns products of one category with their resolved display
// state for the base selection.
// GET /internal/catalog/:category?limit=100&offset=0
func ListCatalog(c *gin.Context) {
	categorySlug := c.Param("category")
	if !catalog.IsValidCategory(categorySlug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + categorySlug})
		return
	}

	var req ListCatalogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit == 0 {
		req.Limit = 100
	}

	ctx := c.Request.Context()
	products, total, err := productStore.ListByCategory(ctx, catalog.Category(categorySlug), req.Limit, req.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	out := make([]CatalogProduct, 0, len(products))
	for i := range products {
		out = append(out, CatalogProduct{
			Product: products[i],
			Display: display.Resolve(&products[i], nil),
		})
	}

	c.JSON(http.StatusOK, ListCatalogResponse{
		Products: out,
		Total:    total,
		Category: categorySlug,
	})
}

// VariantDisplay pairs a variant index with its resolved display state
type VariantDisplay struct {
	Index   int                          `json:"index"`
	Variant catalog.Variant              `json:"variant"`
	Display display.ResolvedDisplayState `json:"display"`
}

// ProductDetailResponse represents a product detail with per-selection
// display states
type ProductDetailResponse struct {
	Product  catalog.Product              `json:"product"`
	Display  display.ResolvedDisplayState `json:"display"`
	Variants []VariantDisplay             `json:"variants"`
}

// GetProduct returns one product with the display state for every possible
// selection (base plus each variant).
// GET /internal/catalog/:category/:slug
func GetProduct(c *gin.Context) {
	categorySlug := c.Param("category")
	slug := c.Param("slug")
	if !catalog.IsValidCategory(categorySlug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + categorySlug})
		return
	}

	ctx := c.Request.Context()
	product, err := productStore.GetBySlug(ctx, catalog.Category(categorySlug), slug)
	if err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	variants := make([]VariantDisplay, 0, len(product.Variants))
	for i := range product.Variants {
		variants = append(variants, VariantDisplay{
			Index:   i,
			Variant: product.Variants[i],
			Display: display.Resolve(product, &product.Variants[i]),
		})
	}

	c.JSON(http.StatusOK, ProductDetailResponse{
		Product:  *product,
		Display:  display.Resolve(product, nil),
		Variants: variants,
	})
}
