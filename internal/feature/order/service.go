// Package order turns a cart into an order. There is no payment step, so
// every order is written as completed.
package order

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"glimmr/internal/domain"
)

type Service struct {
	carts    domain.CartRepository
	products domain.ProductRepository
	orders   domain.OrderRepository
	log      *zap.Logger
}

func NewService(carts domain.CartRepository, products domain.ProductRepository, orders domain.OrderRepository, l *zap.Logger) *Service {
	return &Service{carts: carts, products: products, orders: orders, log: l.Named("order")}
}

type CreateInput struct {
	// Total as shown to the shopper. Zero or negative means compute it.
	Total           float64         `json:"total"`
	ShippingAddress *domain.Address `json:"shippingAddress"`
}

// Create snapshots the cart into an order and then empties the cart. The
// two writes are not atomic.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Order, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && c.IsEmpty()) {
		return nil, domain.ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	items, computed, err := s.snapshot(ctx, c.Snapshot())
	if err != nil {
		return nil, err
	}
	total := in.Total
	if total <= 0 {
		total = computed
	}
	o := &domain.Order{
		UserID:          userID,
		Items:           items,
		Total:           total,
		Status:          domain.OrderStatusCompleted,
		ShippingAddress: in.ShippingAddress,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	c.Clear()
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("order %s placed but cart not cleared: %w", o.ID, err)
	}
	s.log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("user_id", userID),
		zap.Int("lines", len(items)),
		zap.Float64("total", total),
	)
	return o, nil
}

// snapshot copies each line with the product's current name and price.
func (s *Service) snapshot(ctx context.Context, lines []domain.CartItem) ([]domain.OrderItem, float64, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(lines))
	var total float64
	for _, l := range lines {
		it := domain.OrderItem{ProductID: l.ProductID, Quantity: l.Quantity}
		if p, ok := byID[l.ProductID]; ok {
			it.Name, it.Price = p.Name, p.Price
			total += p.Price * float64(l.Quantity)
		}
		items = append(items, it)
	}
	return items, math.Round(total*100) / 100, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.orders.FindForUser(ctx, orderID, userID)
}
