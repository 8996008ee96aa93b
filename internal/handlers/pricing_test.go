package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamenart/catalog-service/internal/catalog"
	"github.com/kamenart/catalog-service/internal/pricing"
	"github.com/kamenart/catalog-service/internal/uniqueness"
)

func previewRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/internal/admin/pricing/preview", PreviewPricing)
	return router
}

func postPreview(t *testing.T, router *gin.Engine, req PricingPreviewRequest) PricingPreviewResponse {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq, err := http.NewRequest("POST", "/internal/admin/pricing/preview", bytes.NewBuffer(body))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PricingPreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// TestPreviewPriceEditDerivesDiscount covers the common flow: old price is
// already set, the editor types a lower price, discount comes back derived.
func TestPreviewPriceEditDerivesDiscount(t *testing.T) {
	router := previewRouter()

	resp := postPreview(t, router, PricingPreviewRequest{
		State:    pricing.FormPriceState{OldPrice: "600"},
		Field:    "price",
		RawValue: "450",
	})

	assert.Equal(t, "450", resp.State.Price)
	assert.Equal(t, "600", resp.State.OldPrice)
	assert.Equal(t, "25", resp.State.DiscountPercent)
}

// TestPreviewDiscountEditDerivesOldPrice covers typing a discount when only
// the price is known.
func TestPreviewDiscountEditDerivesOldPrice(t *testing.T) {
	router := previewRouter()

	resp := postPreview(t, router, PricingPreviewRequest{
		State:    pricing.FormPriceState{Price: "100"},
		Field:    "discountPercent",
		RawValue: "25",
	})

	assert.Equal(t, "133", resp.State.OldPrice)
	assert.Equal(t, "25", resp.State.DiscountPercent)
}

// TestPreviewDiscountClamped verifies out-of-range discounts get clamped
// before recomputation.
func TestPreviewDiscountClamped(t *testing.T) {
	router := previewRouter()

	resp := postPreview(t, router, PricingPreviewRequest{
		State:    pricing.FormPriceState{Price: "100"},
		Field:    "discountPercent",
		RawValue: "150",
	})

	assert.Equal(t, "99", resp.State.DiscountPercent)
}

// TestPreviewPriceOnRequestToggle checks the toggle clears editable fields
// and unchecking starts from a blank slate.
func TestPreviewPriceOnRequestToggle(t *testing.T) {
	router := previewRouter()

	resp := postPreview(t, router, PricingPreviewRequest{
		State:     pricing.FormPriceState{Price: "450", OldPrice: "600", DiscountPercent: "25"},
		Field:     "priceOnRequest",
		OnRequest: true,
	})

	assert.True(t, resp.State.PriceOnRequest)
	assert.Empty(t, resp.State.Price)
	assert.Empty(t, resp.State.OldPrice)
	assert.Empty(t, resp.State.DiscountPercent)
}

// TestPreviewRejectsUnknownField verifies binding validation on field names.
func TestPreviewRejectsUnknownField(t *testing.T) {
	router := previewRouter()

	body, err := json.Marshal(PricingPreviewRequest{Field: "currency", RawValue: "EUR"})
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/internal/admin/pricing/preview", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type staticNameSource struct {
	products map[catalog.Category][]catalog.ProductRef
}

func (s *staticNameSource) Categories() []catalog.Category {
	return catalog.Categories()
}

func (s *staticNameSource) ProductsByCategory(_ context.Context, cat catalog.Category) ([]catalog.ProductRef, error) {
	return s.products[cat], nil
}

func checkNameRouter(t *testing.T) *gin.Engine {
	t.Helper()

	source := &staticNameSource{products: map[catalog.Category][]catalog.ProductRef{
		catalog.CategorySingle: {
			{ID: 5, Name: "Одиночный О-1"},
			{ID: 9, Name: "Одиночный О-2"},
		},
	}}
	logger := zerolog.Nop()
	nameChecker = uniqueness.NewChecker(source, &logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/internal/admin/check-name", CheckName)
	return router
}

func getCheckName(t *testing.T, router *gin.Engine, query string) CheckNameResponse {
	t.Helper()

	req, err := http.NewRequest("GET", "/internal/admin/check-name?"+query, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CheckNameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// TestCheckNameConflict verifies a taken name is reported as not unique.
func TestCheckNameConflict(t *testing.T) {
	router := checkNameRouter(t)

	resp := getCheckName(t, router, "name="+url.QueryEscape("одиночный о-1"))
	assert.False(t, resp.Unique)
}

// TestCheckNameSelfExcluded verifies a product keeping its own name passes.
func TestCheckNameSelfExcluded(t *testing.T) {
	router := checkNameRouter(t)

	resp := getCheckName(t, router, "name="+url.QueryEscape("одиночный о-1")+"&excludeId=5")
	assert.True(t, resp.Unique)
}

// TestCheckNameFree verifies an unused name passes.
func TestCheckNameFree(t *testing.T) {
	router := checkNameRouter(t)

	resp := getCheckName(t, router, "name="+url.QueryEscape("Одиночный О-3"))
	assert.True(t, resp.Unique)
}

// TestCheckNameMissingParam verifies name is required.
func TestCheckNameMissingParam(t *testing.T) {
	router := checkNameRouter(t)

	req, err := http.NewRequest("GET", "/internal/admin/check-name", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
