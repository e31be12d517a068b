package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentOrders(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/orders/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeObject(t, w)
	assert.Equal(t, float64(4), got["totalOrders"])
	orders := got["orders"].([]any)
	require.Len(t, orders, 4)

	first := orders[0].(map[string]any)
	assert.Equal(t, float64(1), first["orderId"])
	assert.Equal(t, "Alice Moreno", first["customerName"])
	assert.Equal(t, float64(2), first["itemsCount"])
	assert.Equal(t, "card", first["paymentMethod"])

	// order 4 references a user that no longer exists
	assert.Equal(t, "Unknown", orders[2].(map[string]any)["customerName"])
	// the oldest order sorts last
	assert.Equal(t, float64(3), orders[3].(map[string]any)["orderId"])
}

func TestRecentOrdersPaging(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/orders/recent?limit=2&offset=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeObject(t, w)
	assert.Equal(t, float64(4), got["totalOrders"])
	orders := got["orders"].([]any)
	require.Len(t, orders, 2)
	assert.Equal(t, float64(2), orders[0].(map[string]any)["orderId"])
	assert.Equal(t, float64(4), orders[1].(map[string]any)["orderId"])

	// offsets past the end produce an empty page, not an error
	w = perform(t, router, http.MethodGet, "/v1/orders/recent?offset=100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeObject(t, w)["orders"])
}

func TestRecentOrdersBadParamsFallBack(t *testing.T) {
	router := newRouter()

	w := perform(t, router, http.MethodGet, "/v1/orders/recent?limit=abc&offset=-3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeObject(t, w)["orders"], 4)
}

func TestOrderSearch(t *testing.T) {
	router := newRouter()

	// unique key with a single match collapses into a bare object
	w := perform(t, router, http.MethodPost, "/v1/orders/search", map[string]any{"orderId": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, byte('{'), w.Body.Bytes()[0])
	assert.Equal(t, float64(1), decodeObject(t, w)["id"])

	w = perform(t, router, http.MethodPost, "/v1/orders/search", map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, byte('['), w.Body.Bytes()[0])
	assert.Len(t, decodeArray(t, w), 3)

	w = perform(t, router, http.MethodPost, "/v1/orders/search", map[string]any{"userId": 2, "paymentMethod": "card"})
	require.Equal(t, http.StatusOK, w.Code)
	matches := decodeArray(t, w)
	require.Len(t, matches, 1)
	assert.Equal(t, float64(3), matches[0]["id"])

	w = perform(t, router, http.MethodPost, "/v1/orders/search", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "At least one search field is required", decodeObject(t, w)["error"])

	w = perform(t, router, http.MethodPost, "/v1/orders/search", map[string]any{"status": "refunded"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No orders found", decodeObject(t, w)["error"])
}
