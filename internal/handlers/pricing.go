package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/kamenart/catalog-service/internal/database"
	"github.com/kamenart/catalog-service/internal/pricing"
)

// PricingPreviewRequest represents one editor keystroke against the price
// form
type PricingPreviewRequest struct {
	State    pricing.FormPriceState `json:"state"`
	Field    string                 `json:"field" binding:"required,oneof=price oldPrice discountPercent priceOnRequest"`
	RawValue string                 `json:"rawValue"`
	// OnRequest carries the toggle value when Field is priceOnRequest.
	OnRequest bool `json:"onRequest"`
}

// PricingPreviewResponse returns the recomputed form state
type PricingPreviewResponse struct {
	State pricing.FormPriceState `json:"state"`
}

// PreviewPricing applies a single form edit and returns the consistent
// triple, without persisting anything.
// POST /internal/admin/pricing/preview
func PreviewPricing(c *gin.Context) {
	var req PricingPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var next pricing.FormPriceState
	if req.Field == "priceOnRequest" {
		next = pricing.SetPriceOnRequest(req.State, req.OnRequest)
	} else {
		raw := req.RawValue
		if pricing.Field(req.Field) == pricing.FieldDiscountPercent {
			raw = pricing.ClampDiscountInput(raw)
		}
		next = pricing.ApplyEdit(req.State, pricing.Field(req.Field), raw)
	}

	c.JSON(http.StatusOK, PricingPreviewResponse{State: next})
}

// UpdatePricingRequest carries the final form state to persist
type UpdatePricingRequest struct {
	State pricing.FormPriceState `json:"state"`
}

// UpdatePricingResponse confirms the persisted projection
type UpdatePricingResponse struct {
	ID        int64                    `json:"id"`
	Persisted pricing.PersistedPricing `json:"persisted"`
}

// UpdateProductPricing projects the admin form state and persists it for
// one product.
// PUT /internal/admin/products/:id/pricing
func UpdateProductPricing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	projection := pricing.Persisted(req.State)

	if err := productStore.UpdatePricing(ctx, id, projection); err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pricing"})
		return
	}

	// The product's category snapshot is stale now.
	if nameCache != nil {
		if product, err := productStore.GetByID(ctx, id); err == nil {
			nameCache.Invalidate(product.Category)
		}
	}

	log.Info().
		Int64("id", id).
		Float64("price", projection.Price).
		Bool("onRequest", projection.Price == 0).
		Msg("Product pricing updated")

	c.JSON(http.StatusOK, UpdatePricingResponse{ID: id, Persisted: projection})
}
