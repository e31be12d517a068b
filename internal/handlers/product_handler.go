package handlers

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shop-analytics/internal/models"
)

type ProductHandler struct {
	ds Datastore
}

func NewProductHandler(ds Datastore) *ProductHandler {
	return &ProductHandler{ds: ds}
}

type LowStockProduct struct {
	ProductID    int64   `json:"productId"`
	Name         string  `json:"name"`
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	MainStock    float64 `json:"mainStock"`
	TotalStock   float64 `json:"totalStock"`
	Status       string  `json:"status"`
}

type LowStockResponse struct {
	Threshold float64           `json:"threshold"`
	Count     int               `json:"count"`
	Products  []LowStockProduct `json:"products"`
}

// GET /v1/products/low-stock
//
// A product counts as low on stock when its main stock plus every variant
// stock is at or below the threshold.
func (h *ProductHandler) LowStock(c *gin.Context) {
	threshold := float64(defaultThreshold)
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid threshold"})
			return
		}
		threshold = v
	}

	var categoryID float64
	filterCategory := false
	if raw := c.Query("categoryId"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid categoryId"})
			return
		}
		categoryID = v
		filterCategory = true
	}

	alerts := []LowStockProduct{}
	for _, p := range h.ds.Products() {
		if filterCategory && float64(p.CategoryID) != categoryID {
			continue
		}
		total := p.TotalStock()
		if total > threshold {
			continue
		}
		alerts = append(alerts, LowStockProduct{
			ProductID:    p.ID,
			Name:         p.Name,
			CategoryID:   p.CategoryID,
			CategoryName: categoryName(h.ds, p.CategoryID),
			MainStock:    float64(p.Stock),
			TotalStock:   total,
			Status:       p.Status,
		})
	}
	// most critical first
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].TotalStock < alerts[j].TotalStock
	})

	c.JSON(http.StatusOK, LowStockResponse{
		Threshold: threshold,
		Count:     len(alerts),
		Products:  alerts,
	})
}

type RecentReview struct {
	ReviewID     int64  `json:"reviewId"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	ReviewerName string `json:"reviewerName"`
	CreatedAt    int64  `json:"createdAt"`
}

type ProductReviewsSummary struct {
	ProductID          int64          `json:"productId"`
	ProductName        string         `json:"productName"`
	TotalReviews       int            `json:"totalReviews"`
	AverageRating      float64        `json:"averageRating"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
	RecentReviews      []RecentReview `json:"recentReviews"`
}

// GET /v1/products/:id/reviews-summary
//
// Out-of-range ratings count toward totalReviews but are excluded from the
// distribution buckets and the rating sum, so the buckets may add up to
// less than totalReviews. Longstanding observable behavior; consumers
// depend on it.
func (h *ProductHandler) ReviewsSummary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	product, ok := findProduct(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}

	distribution := map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
	var productReviews []models.Review
	var totalRating float64
	for _, r := range h.ds.Reviews() {
		if r.ProductID != product.ID {
			continue
		}
		productReviews = append(productReviews, r)
		if r.Rating >= 1 && r.Rating <= 5 {
			distribution[strconv.Itoa(r.Rating)]++
			totalRating += float64(r.Rating)
		}
	}

	summary := ProductReviewsSummary{
		ProductID:          product.ID,
		ProductName:        product.Name,
		TotalReviews:       len(productReviews),
		RatingDistribution: distribution,
		RecentReviews:      []RecentReview{},
	}
	if len(productReviews) > 0 {
		summary.AverageRating = round2(totalRating / float64(len(productReviews)))
	}

	sort.SliceStable(productReviews, func(i, j int) bool {
		return productReviews[i].CreatedAt > productReviews[j].CreatedAt
	})
	if len(productReviews) > 5 {
		productReviews = productReviews[:5]
	}
	for _, r := range productReviews {
		summary.RecentReviews = append(summary.RecentReviews, RecentReview{
			ReviewID:     r.ID,
			Rating:       r.Rating,
			Comment:      r.Comment,
			ReviewerName: userName(h.ds, r.UserID),
			CreatedAt:    r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, summary)
}

type Recommendation struct {
	ProductID int64    `json:"productId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Stock     float64  `json:"stock"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
}

type RecommendationsResponse struct {
	ProductID       int64            `json:"productId"`
	ProductName     string           `json:"productName"`
	Recommendations []Recommendation `json:"recommendations"`
}

// GET /v1/products/:id/recommendations
//
// Active products from the same category, closest price first, the source
// product excluded.
func (h *ProductHandler) Recommendations(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	product, ok := findProduct(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	limit := queryInt(c, "limit", defaultRecommendLimit)

	var candidates []models.Product
	for _, p := range h.ds.Products() {
		if p.ID == product.ID || p.CategoryID != product.CategoryID || p.Status != "active" {
			continue
		}
		candidates = append(candidates, p)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		di := math.Abs(float64(candidates[i].Price) - float64(product.Price))
		dj := math.Abs(float64(candidates[j].Price) - float64(product.Price))
		return di < dj
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	recommendations := make([]Recommendation, 0, len(candidates))
	for _, p := range candidates {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		recommendations = append(recommendations, Recommendation{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     round2(float64(p.Price)),
			Stock:     float64(p.Stock),
			Status:    p.Status,
			Tags:      tags,
		})
	}

	c.JSON(http.StatusOK, RecommendationsResponse{
		ProductID:       product.ID,
		ProductName:     product.Name,
		Recommendations: recommendations,
	})
}

type SalesStats struct {
	ProductID         int64   `json:"productId"`
	ProductName       string  `json:"productName"`
	OrdersCount       int     `json:"ordersCount"`
	TotalSales        float64 `json:"totalSales"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// GET /v1/products/:id/sales-stats
//
// An order with several matching line items contributes every line to the
// totals but only once to ordersCount.
func (h *ProductHandler) SalesStats(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	product, ok := findProduct(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}

	result := SalesStats{
		ProductID:   product.ID,
		ProductName: product.Name,
	}
	for _, o := range h.ds.Orders() {
		matched := false
		for _, item := range o.Items {
			if item.ProductID != product.ID {
				continue
			}
			matched = true
			result.TotalSales += float64(item.Quantity)
			result.TotalRevenue += float64(item.Quantity) * float64(item.Price)
		}
		if matched {
			result.OrdersCount++
		}
	}
	result.TotalRevenue = round2(result.TotalRevenue)
	if result.OrdersCount > 0 {
		result.AverageOrderValue = round2(result.TotalRevenue / float64(result.OrdersCount))
	}

	c.JSON(http.StatusOK, result)
}

type TopReviewedProduct struct {
	ProductID      int64   `json:"productId"`
	Name           string  `json:"name"`
	CategoryName   string  `json:"categoryName"`
	ReviewCount    int     `json:"reviewCount"`
	AverageRating  float64 `json:"averageRating"`
	LatestReviewAt int64   `json:"latestReviewAt"`
}

type TopReviewedResponse struct {
	Count    int                  `json:"count"`
	Products []TopReviewedProduct `json:"products"`
}

// GET /v1/products/top-reviewed
//
// Ranked by review count, average rating breaking ties.
func (h *ProductHandler) TopReviewed(c *gin.Context) {
	limit := queryInt(c, "limit", defaultLimit)

	type acc struct {
		count  int
		sum    float64
		latest int64
	}
	perProduct := map[int64]*acc{}
	for _, r := range h.ds.Reviews() {
		a := perProduct[r.ProductID]
		if a == nil {
			a = &acc{}
			perProduct[r.ProductID] = a
		}
		a.count++
		a.sum += float64(r.Rating)
		if r.CreatedAt > a.latest {
			a.latest = r.CreatedAt
		}
	}

	ranked := []TopReviewedProduct{}
	for _, p := range h.ds.Products() {
		a := perProduct[p.ID]
		if a == nil {
			continue
		}
		ranked = append(ranked, TopReviewedProduct{
			ProductID:      p.ID,
			Name:           p.Name,
			CategoryName:   categoryName(h.ds, p.CategoryID),
			ReviewCount:    a.count,
			AverageRating:  round2(a.sum / float64(a.count)),
			LatestReviewAt: a.latest,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ReviewCount != ranked[j].ReviewCount {
			return ranked[i].ReviewCount > ranked[j].ReviewCount
		}
		return ranked[i].AverageRating > ranked[j].AverageRating
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	c.JSON(http.StatusOK, TopReviewedResponse{
		Count:    len(ranked),
		Products: ranked,
	})
}

type ProductSearchRequest struct {
	ProductID  *float64 `json:"productId"`
	Name       *string  `json:"name"`
	CategoryID *float64 `json:"categoryId"`
	Status     *string  `json:"status"`
}

// POST /v1/products/search
func (h *ProductHandler) Search(c *gin.Context) {
	var req ProductSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.ProductID == nil && req.Name == nil && req.CategoryID == nil && req.Status == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one search field is required"})
		return
	}

	matches := []models.Product{}
	for _, p := range h.ds.Products() {
		if req.ProductID != nil && float64(p.ID) != *req.ProductID {
			continue
		}
		if req.Name != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*req.Name)) {
			continue
		}
		if req.CategoryID != nil && float64(p.CategoryID) != *req.CategoryID {
			continue
		}
		if req.Status != nil && !strings.EqualFold(p.Status, *req.Status) {
			continue
		}
		matches = append(matches, p)
	}

	if len(matches) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No products found"})
		return
	}
	if req.ProductID != nil && len(matches) == 1 {
		c.JSON(http.StatusOK, matches[0])
		return
	}
	c.JSON(http.StatusOK, matches)
}
