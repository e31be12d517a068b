package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"shop-analytics/internal/models"
	"shop-analytics/internal/routes"
	"shop-analytics/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	router := gin.New()
	routes.RegisterRoutes(router, store.New(fixture()))
	return router
}

func intp(v int64) *int64 { return &v }

// fixture builds a small dataset covering the edge cases the handlers care
// about: string-typed prices, variant stock, a dangling user reference on
// order 4 and review 3, and an out-of-range rating on review 3.
func fixture() store.Dataset {
	now := time.Now().UnixMilli()
	hour := int64(time.Hour / time.Millisecond)
	day := 24 * hour

	return store.Dataset{
		Users: []models.User{
			{ID: 1, Email: "alice@example.com", FirstName: "Alice", LastName: "Moreno", Role: "customer", Status: "active"},
			{ID: 2, Email: "bob@example.com", FirstName: "Bob", LastName: "Nguyen", Role: "customer", Status: "active"},
			{ID: 3, Email: "carol@shop.test", FirstName: "Carol", LastName: "Smith", Role: "admin", Status: "inactive"},
		},
		Categories: []models.Category{
			{ID: 1, Name: "Office", ParentID: nil, Status: "active"},
			{ID: 2, Name: "Audio", ParentID: intp(1), Status: "active"},
			{ID: 3, Name: "Wearables", ParentID: intp(1), Status: "active"},
			{ID: 4, Name: "Empty", ParentID: nil, Status: "active"},
		},
		Products: []models.Product{
			{ID: 1, CategoryID: 1, Name: "Laptop Stand", Price: 10, Stock: 5, Status: "active"},
			{ID: 2, CategoryID: 1, Name: "Laptop Sleeve", Price: 20, Stock: 3, Status: "inactive"},
			{ID: 3, CategoryID: 2, Name: "Headphones", Price: 100, Stock: 2, Status: "active",
				Tags: []string{"audio"},
				Variants: []models.Variant{
					{ID: 31, Name: "Black", Price: 100, Stock: 3},
					{ID: 32, Name: "White", Price: 100, Stock: 4},
				}},
			{ID: 4, CategoryID: 2, Name: "Speaker", Price: 110, Stock: 50, Status: "active"},
			{ID: 5, CategoryID: 2, Name: "Amplifier", Price: 150, Stock: 1, Status: "active"},
			{ID: 6, CategoryID: 2, Name: "Turntable", Price: 105, Stock: 0, Status: "inactive"},
			{ID: 7, CategoryID: 3, Name: "Watch", Price: 80, Stock: 7, Status: "active"},
		},
		Orders: []models.Order{
			{ID: 1, UserID: 1, TotalAmount: 310, Status: "completed",
				Payment:   models.Payment{Method: "card", Status: "paid"},
				CreatedAt: now - hour,
				Items: []models.OrderItem{
					{ProductID: 3, Quantity: 2, Price: 100},
					{ProductID: 4, Quantity: 1, Price: 110},
				}},
			{ID: 2, UserID: 2, TotalAmount: 99.99, Status: "completed",
				Payment:   models.Payment{Method: "paypal", Status: "paid"},
				CreatedAt: now - 2*hour,
				Items: []models.OrderItem{
					{ProductID: 3, Quantity: 1, Price: 100},
				}},
			{ID: 3, UserID: 2, TotalAmount: 50.01, Status: "pending",
				Payment:   models.Payment{Method: "card", Status: "pending"},
				CreatedAt: now - 30*day,
				Items: []models.OrderItem{
					{ProductID: 1, Quantity: 1, Price: 10},
				}},
			{ID: 4, UserID: 99, TotalAmount: 280, Status: "completed",
				Payment:   models.Payment{Method: "cash", Status: "paid"},
				CreatedAt: now - 3*hour,
				Items: []models.OrderItem{
					{ProductID: 3, Quantity: 1, Price: 100},
					{ProductID: 3, Quantity: 2, Price: 90},
				}},
		},
		Reviews: []models.Review{
			{ID: 1, ProductID: 3, UserID: 1, Rating: 5, Comment: "Great sound", CreatedAt: now - 5*day},
			{ID: 2, ProductID: 3, UserID: 2, Rating: 4, Comment: "Solid build", CreatedAt: now - 4*day},
			{ID: 3, ProductID: 3, UserID: 99, Rating: 9, Comment: "Corrupt rating", CreatedAt: now - 3*day},
			{ID: 4, ProductID: 4, UserID: 1, Rating: 4, Comment: "Loud enough", CreatedAt: now - 2*day},
			{ID: 5, ProductID: 7, UserID: 2, Rating: 5, Comment: "Love the strap", CreatedAt: now - day},
		},
	}
}

func perform(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
