package domain

import "context"

type Wishlist struct {
	ID     string   `json:"id"`
	UserID string   `json:"userId"`
	Items  []string `json:"items"`
}

func NewWishlist(userID string) *Wishlist {
	return &Wishlist{UserID: userID, Items: []string{}}
}

// Add reports false when productID is already present.
func (w *Wishlist) Add(productID string) bool {
	for _, id := range w.Items {
		if id == productID {
			return false
		}
	}
	w.Items = append(w.Items, productID)
	return true
}

func (w *Wishlist) Remove(productID string) bool {
	for i, id := range w.Items {
		if id == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return true
		}
	}
	return false
}

type WishlistRepository interface {
	FindByUser(ctx context.Context, userID string) (*Wishlist, error)
	Save(ctx context.Context, w *Wishlist) error
}
