package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsSummary(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/categories/1/products-summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeObject(t, w)
	assert.Equal(t, float64(2), got["totalProducts"])
	assert.Equal(t, float64(1), got["activeProducts"])
	assert.Equal(t, float64(8), got["totalStock"])
	assert.Equal(t, float64(15), got["averagePrice"])
	priceRange := got["priceRange"].(map[string]any)
	assert.Equal(t, float64(10), priceRange["min"])
	assert.Equal(t, float64(20), priceRange["max"])
}

func TestProductsSummaryNoProducts(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/categories/4/products-summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeObject(t, w)
	assert.Equal(t, float64(0), got["totalProducts"])
	assert.Equal(t, float64(0), got["averagePrice"])
}

func TestProductsSummaryValidation(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/categories/abc/products-summary", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid id", decodeObject(t, w)["error"])

	w = perform(t, router, http.MethodGet, "/v1/categories/999/products-summary", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "category not found", decodeObject(t, w)["error"])

	// fractional ids are numerically valid but match nothing
	w = perform(t, router, http.MethodGet, "/v1/categories/1.5/products-summary", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubcategories(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/categories/1/subcategories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeObject(t, w)
	children := got["subcategories"].([]any)
	require.Len(t, children, 2)
	first := children[0].(map[string]any)
	assert.Equal(t, "Audio", first["name"])
	assert.Equal(t, float64(4), first["productCount"])
	// own products plus both children
	assert.Equal(t, float64(7), got["totalProducts"])
	assert.Equal(t, float64(1), got["depth"])
}

func TestSubcategoriesLeafCategory(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/categories/4/subcategories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeObject(t, w)
	assert.Empty(t, got["subcategories"])
	assert.Equal(t, float64(0), got["depth"])
}

func TestTrendingProducts(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/categories/2/trending-products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeObject(t, w)
	trending := got["trendingProducts"].([]any)
	require.Len(t, trending, 2)

	first := trending[0].(map[string]any)
	assert.Equal(t, "Headphones", first["name"])
	assert.Equal(t, float64(6), first["salesCount"])
	assert.Equal(t, float64(580), first["revenue"])

	second := trending[1].(map[string]any)
	assert.Equal(t, "Speaker", second["name"])
	assert.Equal(t, float64(1), second["salesCount"])
}

func TestTrendingProductsLimit(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/categories/2/trending-products?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	trending := decodeObject(t, w)["trendingProducts"].([]any)
	require.Len(t, trending, 1)
	assert.Equal(t, "Headphones", trending[0].(map[string]any)["name"])
}

func TestCategoryReviewsStats(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/categories/2/reviews-stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeObject(t, w)
	assert.Equal(t, float64(4), got["totalReviews"])
	assert.Equal(t, 5.5, got["averageRating"])

	top := got["topProducts"].([]any)
	require.Len(t, top, 2)
	first := top[0].(map[string]any)
	assert.Equal(t, "Headphones", first["productName"])
	assert.Equal(t, float64(3), first["reviewCount"])
}

func TestCategorySearch(t *testing.T) {
	router := newRouter()

	// categoryId is the unique key: one match comes back as a bare object
	w := perform(t, router, http.MethodPost, "/v1/categories/search", map[string]any{"categoryId": 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, byte('{'), w.Body.Bytes()[0])
	assert.Equal(t, "Audio", decodeObject(t, w)["name"])

	// name is not unique, so even a single match stays an array
	w = perform(t, router, http.MethodPost, "/v1/categories/search", map[string]any{"name": "audio"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, byte('['), w.Body.Bytes()[0])
	require.Len(t, decodeArray(t, w), 1)

	w = perform(t, router, http.MethodPost, "/v1/categories/search", map[string]any{"parentId": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeArray(t, w), 2)

	w = perform(t, router, http.MethodPost, "/v1/categories/search", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "At least one search field is required", decodeObject(t, w)["error"])

	w = perform(t, router, http.MethodPost, "/v1/categories/search", map[string]any{"name": "garden"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No categories found", decodeObject(t, w)["error"])
}
