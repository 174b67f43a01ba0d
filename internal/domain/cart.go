package domain

import (
	"context"
	"time"
)

type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is the per-user line list. Lines keep insertion order and a product
// appears at most once.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

func (c *Cart) index(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add increments an existing line or appends a new one.
func (c *Cart) Add(productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if i := c.index(productID); i >= 0 {
		c.Items[i].Quantity += qty
		return nil
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty})
	return nil
}

// SetQuantity overwrites a line's quantity; qty <= 0 drops the line.
func (c *Cart) SetQuantity(productID string, qty int) error {
	i := c.index(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	if qty <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	}
	c.Items[i].Quantity = qty
	return nil
}

// Remove drops the line for productID and reports whether one existed.
func (c *Cart) Remove(productID string) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

func (c *Cart) Clear() { c.Items = []CartItem{} }

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Snapshot returns a copy of the lines that does not alias the cart.
func (c *Cart) Snapshot() []CartItem {
	out := make([]CartItem, len(c.Items))
	copy(out, c.Items)
	return out
}

type CartRepository interface {
	FindByUser(ctx context.Context, userID string) (*Cart, error)
	// Save upserts the cart keyed by UserID and assigns ID on first write.
	Save(ctx context.Context, c *Cart) error
}
