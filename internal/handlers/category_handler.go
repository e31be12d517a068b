package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/montanaflynn/stats"

	"shop-analytics/internal/models"
)

type CategoryHandler struct {
	ds Datastore
}

func NewCategoryHandler(ds Datastore) *CategoryHandler {
	return &CategoryHandler{ds: ds}
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CategoryProductsSummary struct {
	CategoryID     int64      `json:"categoryId"`
	CategoryName   string     `json:"categoryName"`
	TotalProducts  int        `json:"totalProducts"`
	ActiveProducts int        `json:"activeProducts"`
	TotalStock     float64    `json:"totalStock"`
	AveragePrice   float64    `json:"averagePrice"`
	PriceRange     PriceRange `json:"priceRange"`
}

// GET /v1/categories/:id/products-summary
func (h *CategoryHandler) ProductsSummary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	category, ok := findCategory(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "category not found"})
		return
	}

	summary := CategoryProductsSummary{
		CategoryID:   category.ID,
		CategoryName: category.Name,
	}

	var prices []float64
	for _, p := range h.ds.Products() {
		if float64(p.CategoryID) != id {
			continue
		}
		summary.TotalProducts++
		if p.Status == "active" {
			summary.ActiveProducts++
		}
		summary.TotalStock += float64(p.Stock)
		if p.Price > 0 {
			prices = append(prices, float64(p.Price))
		}
	}

	if len(prices) > 0 {
		mean, _ := stats.Mean(prices)
		min, _ := stats.Min(prices)
		max, _ := stats.Max(prices)
		summary.AveragePrice = round2(mean)
		summary.PriceRange = PriceRange{Min: round2(min), Max: round2(max)}
	}

	c.JSON(http.StatusOK, summary)
}

type Subcategory struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	ProductCount int    `json:"productCount"`
}

type SubcategoriesResponse struct {
	CategoryID    int64         `json:"categoryId"`
	CategoryName  string        `json:"categoryName"`
	Subcategories []Subcategory `json:"subcategories"`
	TotalProducts int           `json:"totalProducts"`
	Depth         int           `json:"depth"`
}

// GET /v1/categories/:id/subcategories
//
// Resolves direct children only; grandchildren are not walked. Depth is a
// has-children flag, not a tree depth.
func (h *CategoryHandler) Subcategories(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	category, ok := findCategory(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "category not found"})
		return
	}

	resp := SubcategoriesResponse{
		CategoryID:    category.ID,
		CategoryName:  category.Name,
		Subcategories: []Subcategory{},
	}

	resp.TotalProducts = h.countProducts(category.ID)
	for _, child := range h.ds.Categories() {
		if child.ParentID == nil || float64(*child.ParentID) != id {
			continue
		}
		count := h.countProducts(child.ID)
		resp.TotalProducts += count
		resp.Subcategories = append(resp.Subcategories, Subcategory{
			ID:           child.ID,
			Name:         child.Name,
			Status:       child.Status,
			ProductCount: count,
		})
	}
	if len(resp.Subcategories) > 0 {
		resp.Depth = 1
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) countProducts(categoryID int64) int {
	count := 0
	for _, p := range h.ds.Products() {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count
}

type TrendingProduct struct {
	ProductID  int64   `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	SalesCount float64 `json:"salesCount"`
	Revenue    float64 `json:"revenue"`
}

type TrendingResponse struct {
	CategoryID       int64             `json:"categoryId"`
	CategoryName     string            `json:"categoryName"`
	WindowDays       int               `json:"windowDays"`
	TrendingProducts []TrendingProduct `json:"trendingProducts"`
}

// GET /v1/categories/:id/trending-products
func (h *CategoryHandler) TrendingProducts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	category, ok := findCategory(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "category not found"})
		return
	}
	limit := queryInt(c, "limit", defaultLimit)

	inCategory := map[int64]bool{}
	for _, p := range h.ds.Products() {
		if p.CategoryID == category.ID {
			inCategory[p.ID] = true
		}
	}

	type totals struct {
		sales   float64
		revenue float64
	}
	cutoff := time.Now().UnixMilli() - trendingWindowMillis
	perProduct := map[int64]*totals{}
	var firstSeen []int64
	for _, o := range h.ds.Orders() {
		if o.CreatedAt < cutoff {
			continue
		}
		for _, item := range o.Items {
			if !inCategory[item.ProductID] {
				continue
			}
			t := perProduct[item.ProductID]
			if t == nil {
				t = &totals{}
				perProduct[item.ProductID] = t
				firstSeen = append(firstSeen, item.ProductID)
			}
			t.sales += float64(item.Quantity)
			t.revenue += float64(item.Quantity) * float64(item.Price)
		}
	}

	trending := make([]TrendingProduct, 0, len(firstSeen))
	for _, productID := range firstSeen {
		entry := TrendingProduct{
			ProductID: productID,
			Name:      "Unknown",
			Status:    "unknown",
		}
		if p, ok := findProduct(h.ds, float64(productID)); ok {
			entry.Name = p.Name
			entry.Price = round2(float64(p.Price))
			entry.Status = p.Status
		}
		t := perProduct[productID]
		entry.SalesCount = t.sales
		entry.Revenue = round2(t.revenue)
		trending = append(trending, entry)
	}
	// ties keep first-seen order
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].SalesCount > trending[j].SalesCount
	})
	if len(trending) > limit {
		trending = trending[:limit]
	}

	c.JSON(http.StatusOK, TrendingResponse{
		CategoryID:       category.ID,
		CategoryName:     category.Name,
		WindowDays:       7,
		TrendingProducts: trending,
	})
}

type ProductReviewStats struct {
	ProductID     int64   `json:"productId"`
	ProductName   string  `json:"productName"`
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

type CategoryReviewsStats struct {
	CategoryID    int64                `json:"categoryId"`
	CategoryName  string               `json:"categoryName"`
	TotalReviews  int                  `json:"totalReviews"`
	AverageRating float64              `json:"averageRating"`
	TopProducts   []ProductReviewStats `json:"topProducts"`
}

// GET /v1/categories/:id/reviews-stats
func (h *CategoryHandler) ReviewsStats(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	category, ok := findCategory(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "category not found"})
		return
	}

	productNames := map[int64]string{}
	for _, p := range h.ds.Products() {
		if p.CategoryID == category.ID {
			productNames[p.ID] = p.Name
		}
	}

	type acc struct {
		count int
		sum   float64
	}
	perProduct := map[int64]*acc{}
	var firstSeen []int64
	var ratings []float64
	for _, r := range h.ds.Reviews() {
		if _, ok := productNames[r.ProductID]; !ok {
			continue
		}
		ratings = append(ratings, float64(r.Rating))
		a := perProduct[r.ProductID]
		if a == nil {
			a = &acc{}
			perProduct[r.ProductID] = a
			firstSeen = append(firstSeen, r.ProductID)
		}
		a.count++
		a.sum += float64(r.Rating)
	}

	resp := CategoryReviewsStats{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		TotalReviews: len(ratings),
		TopProducts:  []ProductReviewStats{},
	}
	if len(ratings) > 0 {
		mean, _ := stats.Mean(ratings)
		resp.AverageRating = round2(mean)
	}

	for _, productID := range firstSeen {
		a := perProduct[productID]
		resp.TopProducts = append(resp.TopProducts, ProductReviewStats{
			ProductID:     productID,
			ProductName:   productNames[productID],
			ReviewCount:   a.count,
			AverageRating: round2(a.sum / float64(a.count)),
		})
	}
	sort.SliceStable(resp.TopProducts, func(i, j int) bool {
		return resp.TopProducts[i].ReviewCount > resp.TopProducts[j].ReviewCount
	})
	if len(resp.TopProducts) > 5 {
		resp.TopProducts = resp.TopProducts[:5]
	}

	c.JSON(http.StatusOK, resp)
}

type CategorySearchRequest struct {
	CategoryID *float64 `json:"categoryId"`
	Name       *string  `json:"name"`
	ParentID   *float64 `json:"parentId"`
	Status     *string  `json:"status"`
}

// POST /v1/categories/search
//
// A categoryId filter that matches exactly one category collapses the
// result array into a bare object.
func (h *CategoryHandler) Search(c *gin.Context) {
	var req CategorySearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.CategoryID == nil && req.Name == nil && req.ParentID == nil && req.Status == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one search field is required"})
		return
	}

	matches := []models.Category{}
	for _, cat := range h.ds.Categories() {
		if req.CategoryID != nil && float64(cat.ID) != *req.CategoryID {
			continue
		}
		if req.Name != nil && !strings.Contains(strings.ToLower(cat.Name), strings.ToLower(*req.Name)) {
			continue
		}
		if req.ParentID != nil && (cat.ParentID == nil || float64(*cat.ParentID) != *req.ParentID) {
			continue
		}
		if req.Status != nil && !strings.EqualFold(cat.Status, *req.Status) {
			continue
		}
		matches = append(matches, cat)
	}

	if len(matches) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No categories found"})
		return
	}
	if req.CategoryID != nil && len(matches) == 1 {
		c.JSON(http.StatusOK, matches[0])
		return
	}
	c.JSON(http.StatusOK, matches)
}
