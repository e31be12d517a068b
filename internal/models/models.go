package models

import "strings"

// User represents a store customer or staff account
type User struct {
	ID        int64  `json:"id" bson:"id"`
	Email     string `json:"email" bson:"email"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Role      string `json:"role,omitempty" bson:"role,omitempty"`
	Status    string `json:"status,omitempty" bson:"status,omitempty"`
}

// DisplayName returns "firstName lastName" trimmed of surrounding spaces.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Variant is a product variation carrying its own stock
type Variant struct {
	ID    int64  `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Price Number `json:"price" bson:"price"`
	Stock Number `json:"stock" bson:"stock"`
}

type Product struct {
	ID         int64     `json:"id" bson:"id"`
	CategoryID int64     `json:"categoryId" bson:"categoryId"`
	SellerID   int64     `json:"sellerId,omitempty" bson:"sellerId,omitempty"`
	Name       string    `json:"name" bson:"name"`
	Price      Number    `json:"price" bson:"price"`
	Stock      Number    `json:"stock" bson:"stock"`
	Status     string    `json:"status" bson:"status"`
	Variants   []Variant `json:"variants,omitempty" bson:"variants,omitempty"`
	Tags       []string  `json:"tags,omitempty" bson:"tags,omitempty"`
}

// TotalStock is the main stock plus the stock of every variant.
func (p Product) TotalStock() float64 {
	total := float64(p.Stock)
	for _, v := range p.Variants {
		total += float64(v.Stock)
	}
	return total
}

// Category forms a one-level hierarchy through ParentID. A nil ParentID
// marks a root category.
type Category struct {
	ID          int64  `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	ParentID    *int64 `json:"parentId" bson:"parentId"`
	Status      string `json:"status,omitempty" bson:"status,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type OrderItem struct {
	ProductID int64  `json:"productId" bson:"productId"`
	Quantity  Number `json:"quantity" bson:"quantity"`
	Price     Number `json:"price" bson:"price"`
}

type Payment struct {
	Method string `json:"method" bson:"method"`
	Status string `json:"status" bson:"status"`
}

// Order embeds its line items; CreatedAt is epoch milliseconds.
type Order struct {
	ID          int64       `json:"id" bson:"id"`
	UserID      int64       `json:"userId" bson:"userId"`
	Items       []OrderItem `json:"items" bson:"items"`
	TotalAmount Number      `json:"totalAmount" bson:"totalAmount"`
	Status      string      `json:"status" bson:"status"`
	Payment     Payment     `json:"payment" bson:"payment"`
	CreatedAt   int64       `json:"createdAt" bson:"createdAt"`
}

type Review struct {
	ID        int64  `json:"id" bson:"id"`
	ProductID int64  `json:"productId" bson:"productId"`
	UserID    int64  `json:"userId" bson:"userId"`
	Rating    int    `json:"rating" bson:"rating"`
	Comment   string `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}
