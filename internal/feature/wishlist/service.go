// Package wishlist keeps the per-user set of saved products.
package wishlist

import (
	"context"
	"errors"

	"glimmr/internal/domain"
)

type Service struct {
	wishlists domain.WishlistRepository
	products  domain.ProductRepository
}

func NewService(wishlists domain.WishlistRepository, products domain.ProductRepository) *Service {
	return &Service{wishlists: wishlists, products: products}
}

// View lists the saved products that still exist, in the order saved.
type View struct {
	ID     string           `json:"id,omitempty"`
	UserID string           `json:"userId"`
	Items  []domain.Product `json:"items"`
}

func (s *Service) Get(ctx context.Context, userID string) (*View, error) {
	w, err := s.wishlists.FindByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &View{UserID: userID, Items: []domain.Product{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.view(ctx, w)
}

// Add is idempotent: a product already in the wishlist is not duplicated.
func (s *Service) Add(ctx context.Context, userID, productID string) (*View, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	w, err := s.wishlists.FindByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		w, err = domain.NewWishlist(userID), nil
	}
	if err != nil {
		return nil, err
	}
	if w.Add(productID) || w.ID == "" {
		if err := s.wishlists.Save(ctx, w); err != nil {
			return nil, err
		}
	}
	return s.view(ctx, w)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) (*View, error) {
	w, err := s.wishlists.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if w.Remove(productID) {
		if err := s.wishlists.Save(ctx, w); err != nil {
			return nil, err
		}
	}
	return s.view(ctx, w)
}

func (s *Service) view(ctx context.Context, w *domain.Wishlist) (*View, error) {
	products, err := s.products.FindByIDs(ctx, w.Items)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	v := &View{ID: w.ID, UserID: w.UserID, Items: make([]domain.Product, 0, len(w.Items))}
	for _, id := range w.Items {
		if p, ok := byID[id]; ok {
			v.Items = append(v.Items, p)
		}
	}
	return v, nil
}
