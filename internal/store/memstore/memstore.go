// Package memstore keeps every collection in process memory. It backs the
// "memory" driver for local runs and is the store used by handler and
// service tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"glimmr/internal/domain"
	"glimmr/pkg/utils"
)

type Store struct {
	mu        sync.RWMutex
	users     map[string]domain.User
	products  map[string]domain.Product
	carts     map[string]domain.Cart     // by user id
	wishlists map[string]domain.Wishlist // by user id
	orders    []domain.Order
	now       func() time.Time
}

func New() *Store {
	return &Store{
		users:     map[string]domain.User{},
		products:  map[string]domain.Product{},
		carts:     map[string]domain.Cart{},
		wishlists: map[string]domain.Wishlist{},
		now:       time.Now,
	}
}

func (s *Store) Users() domain.UserRepository         { return userRepo{s} }
func (s *Store) Products() domain.ProductRepository   { return productRepo{s} }
func (s *Store) Carts() domain.CartRepository         { return cartRepo{s} }
func (s *Store) Wishlists() domain.WishlistRepository { return wishlistRepo{s} }
func (s *Store) Orders() domain.OrderRepository       { return orderRepo{s} }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneUser(u domain.User) domain.User {
	if u.Address != nil {
		a := *u.Address
		u.Address = &a
	}
	if u.Preferences != nil {
		p := *u.Preferences
		p.StylePreference = cloneStrings(p.StylePreference)
		p.MetalPreference = cloneStrings(p.MetalPreference)
		u.Preferences = &p
	}
	return u
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = cloneStrings(p.Images)
	p.Tags = cloneStrings(p.Tags)
	return p
}

// ---- users ----

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.users {
		if strings.EqualFold(ex.Email, u.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	now := r.s.now()
	u.ID = utils.NewID()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r userRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepo) Update(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	u.UpdatedAt = r.s.now()
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r userRepo) List(_ context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q = strings.ToLower(strings.TrimSpace(q))
	var all []domain.User
	for _, u := range r.s.users {
		if q != "" && !strings.Contains(strings.ToLower(u.Email), q) && !strings.Contains(strings.ToLower(u.Name), q) {
			continue
		}
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.User{}, total, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

// ---- products ----

type productRepo struct{ s *Store }

func (r productRepo) Find(_ context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	r.s.mu.RLock()
	all := make([]domain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, cloneProduct(p))
	}
	r.s.mu.RUnlock()
	// map iteration is random; give Apply a stable base order
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return q.Apply(all), nil
}

func (r productRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r productRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r productRepo) Create(_ context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now()
	}
	r.s.products[p.ID] = cloneProduct(*p)
	return nil
}

func (r productRepo) Update(_ context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.s.products[p.ID] = cloneProduct(*p)
	return nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r productRepo) DeleteAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.products))
	r.s.products = map[string]domain.Product{}
	return n, nil
}

// ---- carts ----

type cartRepo struct{ s *Store }

func (r cartRepo) FindByUser(_ context.Context, userID string) (*domain.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	c.Items = c.Snapshot()
	return &c, nil
}

func (r cartRepo) Save(_ context.Context, c *domain.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ex, ok := r.s.carts[c.UserID]; ok {
		c.ID = ex.ID
	} else if c.ID == "" {
		c.ID = utils.NewID()
	}
	c.UpdatedAt = r.s.now()
	cp := *c
	cp.Items = c.Snapshot()
	r.s.carts[c.UserID] = cp
	return nil
}

// ---- wishlists ----

type wishlistRepo struct{ s *Store }

func (r wishlistRepo) FindByUser(_ context.Context, userID string) (*domain.Wishlist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.wishlists[userID]
	if !ok {
		return nil, domain.ErrWishlistNotFound
	}
	w.Items = append([]string{}, w.Items...)
	return &w, nil
}

func (r wishlistRepo) Save(_ context.Context, w *domain.Wishlist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ex, ok := r.s.wishlists[w.UserID]; ok {
		w.ID = ex.ID
	} else if w.ID == "" {
		w.ID = utils.NewID()
	}
	cp := *w
	cp.Items = append([]string{}, w.Items...)
	r.s.wishlists[w.UserID] = cp
	return nil
}

// ---- orders ----

type orderRepo struct{ s *Store }

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem{}, o.Items...)
	if o.ShippingAddress != nil {
		a := *o.ShippingAddress
		o.ShippingAddress = &a
	}
	return o
}

func (r orderRepo) Create(_ context.Context, o *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = utils.NewID()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = r.s.now()
	}
	r.s.orders = append(r.s.orders, cloneOrder(*o))
	return nil
}

func (r orderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Order{}
	for i := len(r.s.orders) - 1; i >= 0; i-- {
		if r.s.orders[i].UserID == userID {
			out = append(out, cloneOrder(r.s.orders[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r orderRepo) FindForUser(_ context.Context, id, userID string) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if o.ID == id && o.UserID == userID {
			o = cloneOrder(o)
			return &o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}
