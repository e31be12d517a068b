package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-analytics/internal/models"
)

type ReviewHandler struct {
	ds Datastore
}

func NewReviewHandler(ds Datastore) *ReviewHandler {
	return &ReviewHandler{ds: ds}
}

type ReviewSearchRequest struct {
	ReviewID  *float64 `json:"reviewId"`
	ProductID *float64 `json:"productId"`
	UserID    *float64 `json:"userId"`
	Rating    *int     `json:"rating" binding:"omitempty,min=1,max=5"`
}

// POST /v1/reviews/search
//
// reviewId alone, or productId and userId together, are the unique keys
// that collapse a single match into a bare object.
func (h *ReviewHandler) Search(c *gin.Context) {
	var req ReviewSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.ReviewID == nil && req.ProductID == nil && req.UserID == nil && req.Rating == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one search field is required"})
		return
	}

	matches := []models.Review{}
	for _, r := range h.ds.Reviews() {
		if req.ReviewID != nil && float64(r.ID) != *req.ReviewID {
			continue
		}
		if req.ProductID != nil && float64(r.ProductID) != *req.ProductID {
			continue
		}
		if req.UserID != nil && float64(r.UserID) != *req.UserID {
			continue
		}
		if req.Rating != nil && r.Rating != *req.Rating {
			continue
		}
		matches = append(matches, r)
	}

	if len(matches) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No reviews found"})
		return
	}
	unique := req.ReviewID != nil || (req.ProductID != nil && req.UserID != nil)
	if unique && len(matches) == 1 {
		c.JSON(http.StatusOK, matches[0])
		return
	}
	c.JSON(http.StatusOK, matches)
}
