package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"shop-analytics/internal/models"
)

type UserHandler struct {
	ds Datastore
}

func NewUserHandler(ds Datastore) *UserHandler {
	return &UserHandler{ds: ds}
}

type TotalSpentResponse struct {
	UserID      int64   `json:"userId"`
	OrdersCount int     `json:"ordersCount"`
	Total       float64 `json:"total"`
}

// GET /v1/users/:id/total-spent
func (h *UserHandler) TotalSpent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	user, ok := findUser(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}

	resp := TotalSpentResponse{UserID: user.ID}
	var total float64
	for _, o := range h.ds.Orders() {
		if o.UserID != user.ID {
			continue
		}
		resp.OrdersCount++
		total += float64(o.TotalAmount)
	}
	resp.Total = round2(total)

	c.JSON(http.StatusOK, resp)
}

type OrderHistoryEntry struct {
	OrderID       int64   `json:"orderId"`
	TotalAmount   float64 `json:"totalAmount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	ItemsCount    int     `json:"itemsCount"`
	CreatedAt     int64   `json:"createdAt"`
}

type FavoriteCategory struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
	Purchases  int    `json:"purchases"`
}

type OrderHistoryResponse struct {
	UserID           int64               `json:"userId"`
	CustomerName     string              `json:"customerName"`
	OrdersCount      int                 `json:"ordersCount"`
	TotalSpent       float64             `json:"totalSpent"`
	FavoriteCategory *FavoriteCategory   `json:"favoriteCategory"`
	Orders           []OrderHistoryEntry `json:"orders"`
}

// GET /v1/users/:id/orders
//
// The favorite category counts line-item occurrences per resolved product
// category; strict greater-than comparison means the first category seen
// wins ties.
func (h *UserHandler) OrderHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	user, ok := findUser(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}

	resp := OrderHistoryResponse{
		UserID:       user.ID,
		CustomerName: user.DisplayName(),
		Orders:       []OrderHistoryEntry{},
	}

	categoryCounts := map[int64]int{}
	var categoryOrder []int64
	var totalSpent float64
	for _, o := range h.ds.Orders() {
		if o.UserID != user.ID {
			continue
		}
		resp.OrdersCount++
		totalSpent += float64(o.TotalAmount)
		resp.Orders = append(resp.Orders, OrderHistoryEntry{
			OrderID:       o.ID,
			TotalAmount:   round2(float64(o.TotalAmount)),
			Status:        o.Status,
			PaymentMethod: o.Payment.Method,
			ItemsCount:    len(o.Items),
			CreatedAt:     o.CreatedAt,
		})
		for _, item := range o.Items {
			p, ok := findProduct(h.ds, float64(item.ProductID))
			if !ok {
				continue
			}
			if _, seen := categoryCounts[p.CategoryID]; !seen {
				categoryOrder = append(categoryOrder, p.CategoryID)
			}
			categoryCounts[p.CategoryID]++
		}
	}
	resp.TotalSpent = round2(totalSpent)

	best := 0
	var bestID int64
	for _, categoryID := range categoryOrder {
		if categoryCounts[categoryID] > best {
			best = categoryCounts[categoryID]
			bestID = categoryID
		}
	}
	if best > 0 {
		resp.FavoriteCategory = &FavoriteCategory{
			CategoryID: bestID,
			Name:       categoryName(h.ds, bestID),
			Purchases:  best,
		}
	}

	c.JSON(http.StatusOK, resp)
}

type UserReviewEntry struct {
	ReviewID    int64  `json:"reviewId"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	CreatedAt   int64  `json:"createdAt"`
}

type UserReviewsResponse struct {
	UserID           int64             `json:"userId"`
	TotalReviews     int               `json:"totalReviews"`
	AverageRating    float64           `json:"averageRating"`
	ProductsReviewed int               `json:"productsReviewed"`
	Reviews          []UserReviewEntry `json:"reviews"`
}

// GET /v1/users/:id/reviews
func (h *UserHandler) ReviewsHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	user, ok := findUser(h.ds, id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}

	var userReviews []models.Review
	for _, r := range h.ds.Reviews() {
		if r.UserID == user.ID {
			userReviews = append(userReviews, r)
		}
	}
	sort.SliceStable(userReviews, func(i, j int) bool {
		return userReviews[i].CreatedAt > userReviews[j].CreatedAt
	})

	resp := UserReviewsResponse{
		UserID:       user.ID,
		TotalReviews: len(userReviews),
		Reviews:      []UserReviewEntry{},
	}

	distinct := map[int64]bool{}
	var sum float64
	for _, r := range userReviews {
		sum += float64(r.Rating)
		distinct[r.ProductID] = true
		name := "Unknown"
		if p, ok := findProduct(h.ds, float64(r.ProductID)); ok {
			name = p.Name
		}
		resp.Reviews = append(resp.Reviews, UserReviewEntry{
			ReviewID:    r.ID,
			ProductID:   r.ProductID,
			ProductName: name,
			Rating:      r.Rating,
			Comment:     r.Comment,
			CreatedAt:   r.CreatedAt,
		})
	}
	resp.ProductsReviewed = len(distinct)
	if len(userReviews) > 0 {
		resp.AverageRating = round2(sum / float64(len(userReviews)))
	}

	c.JSON(http.StatusOK, resp)
}

type UserSearchRequest struct {
	UserID    *float64 `json:"userId"`
	Email     *string  `json:"email"`
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Role      *string  `json:"role"`
	Status    *string  `json:"status"`
}

// POST /v1/users/search
//
// userId and email are the unique keys that collapse a single match into a
// bare object.
func (h *UserHandler) Search(c *gin.Context) {
	var req UserSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.UserID == nil && req.Email == nil && req.FirstName == nil &&
		req.LastName == nil && req.Role == nil && req.Status == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one search field is required"})
		return
	}

	matches := []models.User{}
	for _, u := range h.ds.Users() {
		if req.UserID != nil && float64(u.ID) != *req.UserID {
			continue
		}
		if req.Email != nil && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(*req.Email)) {
			continue
		}
		if req.FirstName != nil && !strings.Contains(strings.ToLower(u.FirstName), strings.ToLower(*req.FirstName)) {
			continue
		}
		if req.LastName != nil && !strings.Contains(strings.ToLower(u.LastName), strings.ToLower(*req.LastName)) {
			continue
		}
		if req.Role != nil && !strings.EqualFold(u.Role, *req.Role) {
			continue
		}
		if req.Status != nil && !strings.EqualFold(u.Status, *req.Status) {
			continue
		}
		matches = append(matches, u)
	}

	if len(matches) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No users found"})
		return
	}
	if (req.UserID != nil || req.Email != nil) && len(matches) == 1 {
		c.JSON(http.StatusOK, matches[0])
		return
	}
	c.JSON(http.StatusOK, matches)
}
