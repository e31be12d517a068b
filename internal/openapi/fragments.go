package openapi

// Shared builders keep the fragment literals below readable.

func idParam(description string) map[string]any {
	return map[string]any{
		"name":        "id",
		"in":          "path",
		"required":    true,
		"description": description,
		"schema":      map[string]any{"type": "integer"},
	}
}

func queryParam(name, description string, defaultValue int) map[string]any {
	return map[string]any{
		"name":        name,
		"in":          "query",
		"required":    false,
		"description": description,
		"schema":      map[string]any{"type": "integer", "default": defaultValue},
	}
}

func jsonResponse(description, schemaRef string) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": schemaRef},
			},
		},
	}
}

func errorResponse(description string) map[string]any {
	return jsonResponse(description, "#/components/schemas/Error")
}

func getOperation(summary string, parameters []any, okRef string, notFound string) map[string]any {
	return map[string]any{
		"get": map[string]any{
			"summary":    summary,
			"parameters": parameters,
			"responses": map[string]any{
				"200": jsonResponse("OK", okRef),
				"400": errorResponse("Invalid input"),
				"404": errorResponse(notFound),
			},
		},
	}
}

func searchOperation(summary, requestRef string, notFound string) map[string]any {
	return map[string]any{
		"post": map[string]any{
			"summary": summary,
			"requestBody": map[string]any{
				"required": true,
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"$ref": requestRef},
					},
				},
			},
			"responses": map[string]any{
				"200": map[string]any{
					"description": "A single record when a unique key matched exactly one result, otherwise an array",
				},
				"400": errorResponse("At least one search field is required"),
				"404": errorResponse(notFound),
			},
		},
	}
}

// CategoryFragment documents the category analytics and search routes.
func CategoryFragment() Fragment {
	return Fragment{
		Paths: map[string]any{
			"/v1/categories/{id}/products-summary": getOperation(
				"Product counts, stock and price statistics for a category",
				[]any{idParam("Category id")},
				"#/components/schemas/CategoryProductsSummary",
				"Category not found",
			),
			"/v1/categories/{id}/subcategories": getOperation(
				"Direct subcategories with per-child product counts",
				[]any{idParam("Category id")},
				"#/components/schemas/SubcategoriesResponse",
				"Category not found",
			),
			"/v1/categories/{id}/trending-products": getOperation(
				"Best selling category products over the last 7 days",
				[]any{idParam("Category id"), queryParam("limit", "Maximum products returned", 10)},
				"#/components/schemas/TrendingResponse",
				"Category not found",
			),
			"/v1/categories/{id}/reviews-stats": getOperation(
				"Review statistics across the category's products",
				[]any{idParam("Category id")},
				"#/components/schemas/CategoryReviewsStats",
				"Category not found",
			),
			"/v1/categories/search": searchOperation(
				"Search categories by id, name, parent or status",
				"#/components/schemas/CategorySearchRequest",
				"No categories found",
			),
		},
		Schemas: map[string]any{
			"CategoryProductsSummary": objectSchema(map[string]string{
				"categoryId": "integer", "categoryName": "string",
				"totalProducts": "integer", "activeProducts": "integer",
				"totalStock": "number", "averagePrice": "number",
			}),
			"SubcategoriesResponse": objectSchema(map[string]string{
				"categoryId": "integer", "categoryName": "string",
				"totalProducts": "integer", "depth": "integer",
			}),
			"TrendingResponse": objectSchema(map[string]string{
				"categoryId": "integer", "categoryName": "string", "windowDays": "integer",
			}),
			"CategoryReviewsStats": objectSchema(map[string]string{
				"categoryId": "integer", "categoryName": "string",
				"totalReviews": "integer", "averageRating": "number",
			}),
			"CategorySearchRequest": objectSchema(map[string]string{
				"categoryId": "integer", "name": "string", "parentId": "integer", "status": "string",
			}),
		},
	}
}

// ProductFragment documents the product analytics and search routes.
func ProductFragment() Fragment {
	return Fragment{
		Paths: map[string]any{
			"/v1/products/low-stock": getOperation(
				"Products whose total stock is at or below a threshold",
				[]any{
					queryParam("threshold", "Inclusive stock threshold", 10),
					queryParam("categoryId", "Restrict to one category", 0),
				},
				"#/components/schemas/LowStockResponse",
				"Not found",
			),
			"/v1/products/top-reviewed": getOperation(
				"Products ranked by review count",
				[]any{queryParam("limit", "Maximum products returned", 10)},
				"#/components/schemas/TopReviewedResponse",
				"Not found",
			),
			"/v1/products/{id}/reviews-summary": getOperation(
				"Review count, average rating and rating distribution",
				[]any{idParam("Product id")},
				"#/components/schemas/ProductReviewsSummary",
				"Product not found",
			),
			"/v1/products/{id}/recommendations": getOperation(
				"Active same-category products closest in price",
				[]any{idParam("Product id"), queryParam("limit", "Maximum products returned", 5)},
				"#/components/schemas/RecommendationsResponse",
				"Product not found",
			),
			"/v1/products/{id}/sales-stats": getOperation(
				"Order, unit and revenue totals for a product",
				[]any{idParam("Product id")},
				"#/components/schemas/SalesStats",
				"Product not found",
			),
			"/v1/products/search": searchOperation(
				"Search products by id, name, category or status",
				"#/components/schemas/ProductSearchRequest",
				"No products found",
			),
		},
		Schemas: map[string]any{
			"LowStockResponse": objectSchema(map[string]string{
				"threshold": "number", "count": "integer",
			}),
			"TopReviewedResponse": objectSchema(map[string]string{
				"count": "integer",
			}),
			"ProductReviewsSummary": objectSchema(map[string]string{
				"productId": "integer", "productName": "string",
				"totalReviews": "integer", "averageRating": "number",
			}),
			"RecommendationsResponse": objectSchema(map[string]string{
				"productId": "integer", "productName": "string",
			}),
			"SalesStats": objectSchema(map[string]string{
				"productId": "integer", "ordersCount": "integer",
				"totalSales": "number", "totalRevenue": "number", "averageOrderValue": "number",
			}),
			"ProductSearchRequest": objectSchema(map[string]string{
				"productId": "integer", "name": "string", "categoryId": "integer", "status": "string",
			}),
		},
	}
}

// OrderFragment documents the order routes.
func OrderFragment() Fragment {
	return Fragment{
		Paths: map[string]any{
			"/v1/orders/recent": getOperation(
				"Most recent orders with resolved customer names",
				[]any{
					queryParam("limit", "Page size", 10),
					queryParam("offset", "Page offset", 0),
				},
				"#/components/schemas/RecentOrdersResponse",
				"Not found",
			),
			"/v1/orders/search": searchOperation(
				"Search orders by id, user, status or payment fields",
				"#/components/schemas/OrderSearchRequest",
				"No orders found",
			),
		},
		Schemas: map[string]any{
			"RecentOrdersResponse": objectSchema(map[string]string{
				"totalOrders": "integer", "count": "integer",
			}),
			"OrderSearchRequest": objectSchema(map[string]string{
				"orderId": "integer", "userId": "integer", "status": "string",
				"paymentMethod": "string", "paymentStatus": "string",
			}),
		},
	}
}

// UserFragment documents the user routes.
func UserFragment() Fragment {
	return Fragment{
		Paths: map[string]any{
			"/v1/users/{id}/total-spent": getOperation(
				"Order count and total amount spent by a user",
				[]any{idParam("User id")},
				"#/components/schemas/TotalSpentResponse",
				"User not found",
			),
			"/v1/users/{id}/orders": getOperation(
				"A user's order history with their favorite category",
				[]any{idParam("User id")},
				"#/components/schemas/OrderHistoryResponse",
				"User not found",
			),
			"/v1/users/{id}/reviews": getOperation(
				"A user's reviews, newest first",
				[]any{idParam("User id")},
				"#/components/schemas/UserReviewsResponse",
				"User not found",
			),
			"/v1/users/search": searchOperation(
				"Search users by id, email, name, role or status",
				"#/components/schemas/UserSearchRequest",
				"No users found",
			),
		},
		Schemas: map[string]any{
			"TotalSpentResponse": objectSchema(map[string]string{
				"userId": "integer", "ordersCount": "integer", "total": "number",
			}),
			"OrderHistoryResponse": objectSchema(map[string]string{
				"userId": "integer", "ordersCount": "integer", "totalSpent": "number",
			}),
			"UserReviewsResponse": objectSchema(map[string]string{
				"userId": "integer", "totalReviews": "integer",
				"averageRating": "number", "productsReviewed": "integer",
			}),
			"UserSearchRequest": objectSchema(map[string]string{
				"userId": "integer", "email": "string", "firstName": "string",
				"lastName": "string", "role": "string", "status": "string",
			}),
		},
	}
}

// ReviewFragment documents the review routes.
func ReviewFragment() Fragment {
	return Fragment{
		Paths: map[string]any{
			"/v1/reviews/search": searchOperation(
				"Search reviews by id, product, user or rating",
				"#/components/schemas/ReviewSearchRequest",
				"No reviews found",
			),
		},
		Schemas: map[string]any{
			"ReviewSearchRequest": objectSchema(map[string]string{
				"reviewId": "integer", "productId": "integer",
				"userId": "integer", "rating": "integer",
			}),
			"Error": objectSchema(map[string]string{"error": "string"}),
		},
	}
}

func objectSchema(properties map[string]string) map[string]any {
	props := map[string]any{}
	for name, typ := range properties {
		props[name] = map[string]any{"type": typ}
	}
	return map[string]any{"type": "object", "properties": props}
}
