// Package cart implements the per-user shopping cart.
package cart

import (
	"context"
	"errors"
	"time"

	"glimmr/internal/domain"
)

type Service struct {
	carts    domain.CartRepository
	products domain.ProductRepository
}

func NewService(carts domain.CartRepository, products domain.ProductRepository) *Service {
	return &Service{carts: carts, products: products}
}

// Line is a cart line with its product resolved. Product is nil when the
// product has since been deleted.
type Line struct {
	ProductID string          `json:"productId"`
	Product   *domain.Product `json:"product"`
	Quantity  int             `json:"quantity"`
}

type View struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"userId"`
	Items     []Line    `json:"items"`
	Subtotal  float64   `json:"subtotal"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Get returns an empty view when the user has no cart yet.
func (s *Service) Get(ctx context.Context, userID string) (*View, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &View{UserID: userID, Items: []Line{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

// Add puts qty of productID in the cart, creating the cart if needed.
// qty 0 means 1.
func (s *Service) Add(ctx context.Context, userID, productID string, qty int) (*View, error) {
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	c, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		c, err = domain.NewCart(userID), nil
	}
	if err != nil {
		return nil, err
	}
	if err := c.Add(productID, qty); err != nil {
		return nil, err
	}
	return s.save(ctx, c)
}

// Update overwrites a line's quantity; qty <= 0 removes it.
func (s *Service) Update(ctx context.Context, userID, productID string, qty int) (*View, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.SetQuantity(productID, qty); err != nil {
		return nil, err
	}
	return s.save(ctx, c)
}

// Remove drops the line for productID. Removing an absent line is not an
// error.
func (s *Service) Remove(ctx context.Context, userID, productID string) (*View, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	return s.save(ctx, c)
}

func (s *Service) Clear(ctx context.Context, userID string) (*View, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	return s.save(ctx, c)
}

func (s *Service) save(ctx context.Context, c *domain.Cart) (*View, error) {
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

func (s *Service) view(ctx context.Context, c *domain.Cart) (*View, error) {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	v := &View{ID: c.ID, UserID: c.UserID, Items: make([]Line, 0, len(c.Items)), UpdatedAt: c.UpdatedAt}
	for _, it := range c.Items {
		p := byID[it.ProductID]
		v.Items = append(v.Items, Line{ProductID: it.ProductID, Product: p, Quantity: it.Quantity})
		if p != nil {
			v.Subtotal += p.Price * float64(it.Quantity)
		}
	}
	return v, nil
}
