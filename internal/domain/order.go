package domain

import (
	"context"
	"time"
)

// Orders are always written as completed: there is no payment step.
const OrderStatusCompleted = "completed"

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	FindForUser(ctx context.Context, id, userID string) (*Order, error)
}
