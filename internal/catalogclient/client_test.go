package catalogclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamenart/catalog-service/internal/catalog"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func fastConfig() Config {
	return Config{
		RequestsPerSecond: 1000,
		MaxRetries:        2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        10 * time.Millisecond,
		Timeout:           time.Second,
	}
}

func TestFetchCategoryNormalizesVariantShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/catalog/single", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		// One record with a decoded array, one with the legacy
		// JSON-encoded string, one malformed.
		w.Write([]byte(`{"products":[
			{"id":1,"slug":"o-1","name":"Одиночный О-1","category":"single","price":500,
			 "variants":[{"name":"Габбро","price":450}]},
			{"id":2,"slug":"o-2","name":"Одиночный О-2","category":"single","price":600,
			 "variants":"[{\"name\":\"Гранит\"}]"},
			{"id":3,"slug":"o-3","name":"Одиночный О-3","category":"single","price":700,
			 "variants":"[{broken"}
		],"total":3}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-key", fastConfig(), testLogger())

	products, err := client.FetchCategory(context.Background(), catalog.CategorySingle)
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Len(t, products[0].Variants, 1)
	assert.Equal(t, "Габбро", products[0].Variants[0].Name)

	assert.Len(t, products[1].Variants, 1, "JSON-encoded string variants must decode")
	assert.Equal(t, "Гранит", products[1].Variants[0].Name)

	assert.Empty(t, products[2].Variants, "malformed variants must yield an empty list, not an error")
}

func TestFetchCategoryRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"products":[],"total":0}`))
	}))
	defer server.Close()

	client := New(server.URL, "", fastConfig(), testLogger())

	products, err := client.FetchCategory(context.Background(), catalog.CategoryDouble)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchCategoryDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, "", fastConfig(), testLogger())

	_, err := client.FetchCategory(context.Background(), catalog.CategorySingle)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses must not be retried")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.LastStatus)
}

func TestProductsByCategoryProjection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Internal-API-Key"))
		w.Write([]byte(`{"products":[{"id":5,"name":"Одиночный О-1","category":"single"}],"total":1}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-key", fastConfig(), testLogger())

	refs, err := client.ProductsByCategory(context.Background(), catalog.CategorySingle)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, int64(5), refs[0].ID)
	assert.Equal(t, "Одиночный О-1", refs[0].Name)
}
