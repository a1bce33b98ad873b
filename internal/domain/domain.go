package domain

import (
	"math"
	"time"
)

// Product is a catalog entry. Products are seeded once and never mutated,
// so cart rows copy the fields they need instead of referencing back.
type Product struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Description string  `bson:"description" json:"description"`
	Image       string  `bson:"image" json:"image"`
	Category    string  `bson:"category" json:"category"`
}

// CartItem is one row of a cart or receipt. Name, price and image are a
// snapshot taken when the row was added; they are not refreshed if the
// catalog changes afterwards.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image" json:"image"`
}

// Subtotal is the row's contribution to the cart total, unrounded.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	OwnerID   string     `bson:"owner_id" json:"ownerId"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Item returns the row for productID, or nil if the cart has none.
func (c *Cart) Item(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Total sums price*quantity over all rows and rounds once at the end.
func (c *Cart) Total() float64 {
	return Total(c.Items)
}

// Receipt is the immutable record of a completed checkout.
type Receipt struct {
	ID            string     `bson:"_id" json:"id"`
	OwnerID       string     `bson:"owner_id" json:"ownerId"`
	Items         []CartItem `bson:"items" json:"items"`
	Total         float64    `bson:"total" json:"total"`
	CustomerName  string     `bson:"customer_name" json:"customerName"`
	CustomerEmail string     `bson:"customer_email" json:"customerEmail"`
	Timestamp     time.Time  `bson:"timestamp" json:"timestamp"`
}

// Total computes the monetary total of a set of line items. Arithmetic
// stays at full float64 precision; rounding to cents happens exactly once,
// here, so repeated additions do not compound rounding error.
func Total(items []CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Subtotal()
	}
	return Round2(sum)
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
