package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-analytics/internal/handlers"
	"shop-analytics/internal/openapi"
)

func RegisterRoutes(router *gin.Engine, ds handlers.Datastore) {
	categories := handlers.NewCategoryHandler(ds)
	products := handlers.NewProductHandler(ds)
	orders := handlers.NewOrderHandler(ds)
	users := handlers.NewUserHandler(ds)
	reviews := handlers.NewReviewHandler(ds)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Shop Analytics API is running", "version": "1.0"})
	})

	doc := openapi.Merge(
		openapi.Info{Title: "Shop Analytics API", Version: "1.0.0"},
		openapi.CategoryFragment(),
		openapi.ProductFragment(),
		openapi.OrderFragment(),
		openapi.UserFragment(),
		openapi.ReviewFragment(),
	)
	router.GET("/openapi.yaml", openapi.YAMLHandler(doc))
	router.GET("/openapi.json", openapi.JSONHandler(doc))

	v1 := router.Group("/v1")
	{
		v1.GET("/categories/:id/products-summary", categories.ProductsSummary)
		v1.GET("/categories/:id/subcategories", categories.Subcategories)
		v1.GET("/categories/:id/trending-products", categories.TrendingProducts)
		v1.GET("/categories/:id/reviews-stats", categories.ReviewsStats)
		v1.POST("/categories/search", categories.Search)

		v1.GET("/products/low-stock", products.LowStock)
		v1.GET("/products/top-reviewed", products.TopReviewed)
		v1.GET("/products/:id/reviews-summary", products.ReviewsSummary)
		v1.GET("/products/:id/recommendations", products.Recommendations)
		v1.GET("/products/:id/sales-stats", products.SalesStats)
		v1.POST("/products/search", products.Search)

		v1.GET("/orders/recent", orders.Recent)
		v1.POST("/orders/search", orders.Search)

		v1.GET("/users/:id/total-spent", users.TotalSpent)
		v1.GET("/users/:id/orders", users.OrderHistory)
		v1.GET("/users/:id/reviews", users.ReviewsHistory)
		v1.POST("/users/search", users.Search)

		v1.POST("/reviews/search", reviews.Search)
	}
}
