package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"shop-analytics/internal/models"
)

type OrderHandler struct {
	ds Datastore
}

func NewOrderHandler(ds Datastore) *OrderHandler {
	return &OrderHandler{ds: ds}
}

type RecentOrder struct {
	OrderID       int64   `json:"orderId"`
	CustomerName  string  `json:"customerName"`
	TotalAmount   float64 `json:"totalAmount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	ItemsCount    int     `json:"itemsCount"`
	CreatedAt     int64   `json:"createdAt"`
}

type RecentOrdersResponse struct {
	TotalOrders int           `json:"totalOrders"`
	Count       int           `json:"count"`
	Orders      []RecentOrder `json:"orders"`
}

// GET /v1/orders/recent
//
// Newest first; orders without a createdAt sort as epoch 0.
func (h *OrderHandler) Recent(c *gin.Context) {
	limit := queryInt(c, "limit", defaultLimit)
	offset := queryInt(c, "offset", defaultOffset)

	orders := append([]models.Order(nil), h.ds.Orders()...)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt > orders[j].CreatedAt
	})

	total := len(orders)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := orders[offset:end]

	recent := make([]RecentOrder, 0, len(page))
	for _, o := range page {
		recent = append(recent, RecentOrder{
			OrderID:       o.ID,
			CustomerName:  userName(h.ds, o.UserID),
			TotalAmount:   round2(float64(o.TotalAmount)),
			Status:        o.Status,
			PaymentMethod: o.Payment.Method,
			ItemsCount:    len(o.Items),
			CreatedAt:     o.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, RecentOrdersResponse{
		TotalOrders: total,
		Count:       len(recent),
		Orders:      recent,
	})
}

type OrderSearchRequest struct {
	OrderID       *float64 `json:"orderId"`
	UserID        *float64 `json:"userId"`
	Status        *string  `json:"status"`
	PaymentMethod *string  `json:"paymentMethod"`
	PaymentStatus *string  `json:"paymentStatus"`
}

// POST /v1/orders/search
func (h *OrderHandler) Search(c *gin.Context) {
	var req OrderSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.OrderID == nil && req.UserID == nil && req.Status == nil &&
		req.PaymentMethod == nil && req.PaymentStatus == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one search field is required"})
		return
	}

	matches := []models.Order{}
	for _, o := range h.ds.Orders() {
		if req.OrderID != nil && float64(o.ID) != *req.OrderID {
			continue
		}
		if req.UserID != nil && float64(o.UserID) != *req.UserID {
			continue
		}
		if req.Status != nil && !strings.EqualFold(o.Status, *req.Status) {
			continue
		}
		if req.PaymentMethod != nil && !strings.EqualFold(o.Payment.Method, *req.PaymentMethod) {
			continue
		}
		if req.PaymentStatus != nil && !strings.EqualFold(o.Payment.Status, *req.PaymentStatus) {
			continue
		}
		matches = append(matches, o)
	}

	if len(matches) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No orders found"})
		return
	}
	if req.OrderID != nil && len(matches) == 1 {
		c.JSON(http.StatusOK, matches[0])
		return
	}
	c.JSON(http.StatusOK, matches)
}
