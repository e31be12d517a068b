package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-analytics/internal/models"
)

const (
	defaultLimit          = 10
	defaultOffset         = 0
	defaultThreshold      = 10
	defaultRecommendLimit = 5
	trendingWindowMillis  = 7 * 24 * 60 * 60 * 1000
)

// Datastore is the read-only view handlers get of the dataset. Tests
// substitute fixture snapshots through it.
type Datastore interface {
	Users() []models.User
	Products() []models.Product
	Categories() []models.Category
	Orders() []models.Order
	Reviews() []models.Review
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// pathID parses the :id path parameter as a float so that fractional ids
// like "3.5" stay valid input but match no record, instead of truncating
// to a neighbouring integer id.
func pathID(c *gin.Context) (float64, bool) {
	v, err := strconv.ParseFloat(c.Param("id"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// queryInt reads an optional integer query parameter, falling back to the
// default on anything non-numeric or negative.
func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// round2 rounds half away from zero on the third decimal, matching how the
// monetary and rating aggregates are serialized.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func findUser(ds Datastore, id float64) (models.User, bool) {
	for _, u := range ds.Users() {
		if float64(u.ID) == id {
			return u, true
		}
	}
	return models.User{}, false
}

func findProduct(ds Datastore, id float64) (models.Product, bool) {
	for _, p := range ds.Products() {
		if float64(p.ID) == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func findCategory(ds Datastore, id float64) (models.Category, bool) {
	for _, c := range ds.Categories() {
		if float64(c.ID) == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// userName resolves a display name for the given user id, "Unknown" when
// the reference dangles.
func userName(ds Datastore, id int64) string {
	if u, ok := findUser(ds, float64(id)); ok {
		return u.DisplayName()
	}
	return "Unknown"
}

// categoryName resolves a category name, "Unknown" when the reference
// dangles.
func categoryName(ds Datastore, id int64) string {
	if cat, ok := findCategory(ds, float64(id)); ok {
		return cat.Name
	}
	return "Unknown"
}
