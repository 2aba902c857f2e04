package domain

import (
	"fmt"
	"time"
)

// Cart represents a session's shopping cart.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LineItem represents a single product's entry in the cart. PriceSnapshot
// captures the catalog price at add time in minor units (cents); later
// catalog price changes do not affect items already in the cart.
type LineItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	PriceSnapshot int64  `json:"price_snapshot"`
	Quantity      int    `json:"quantity"`
	ImageURL      string `json:"image_url,omitempty"`
}

// TotalAmount calculates the total price of all items in the cart (in cents).
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.PriceSnapshot * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the total number of units across all line items.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItemIndex returns the index of the line item for the given product ID,
// or -1 if the product is not in the cart.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// FormatAmount renders an amount in minor units as a two-decimal string,
// e.g. 2000 -> "20.00". Negative amounts keep the sign on the whole value.
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
