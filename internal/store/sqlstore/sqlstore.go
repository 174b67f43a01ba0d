// Package sqlstore is the gorm backend used when the service runs on
// postgres or mysql instead of MongoDB.
package sqlstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"glimmr/internal/domain"
	"glimmr/pkg/utils"
)

type Store struct{ db *gorm.DB }

func New(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&UserModel{}, &ProductModel{}, &CartModel{}, &WishlistModel{}, &OrderModel{},
	)
}

func (s *Store) Users() domain.UserRepository         { return &UserRepo{db: s.db} }
func (s *Store) Products() domain.ProductRepository   { return &ProductRepo{db: s.db} }
func (s *Store) Carts() domain.CartRepository         { return &CartRepo{db: s.db} }
func (s *Store) Wishlists() domain.WishlistRepository { return &WishlistRepo{db: s.db} }
func (s *Store) Orders() domain.OrderRepository       { return &OrderRepo{db: s.db} }

// ---- users ----

type UserRepo struct{ db *gorm.DB }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	now := time.Now()
	u.ID = utils.NewID()
	u.CreatedAt, u.UpdatedAt = now, now
	m := userFromDomain(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepo) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).First(&m, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u := m.toDomain()
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now()
	m := userFromDomain(u)
	res := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", u.ID).
		Select("name", "password_hash", "phone", "address", "preferences", "role", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&UserModel{})
	if s := strings.TrimSpace(q); s != "" {
		like := likePattern(s)
		tx = tx.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []UserModel
	if err := tx.Offset(offset).Limit(limit).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

// ---- carts ----

type CartRepo struct{ db *gorm.DB }

func (r *CartRepo) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var m CartModel
	err := r.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	c := &domain.Cart{ID: m.ID, UserID: m.UserID, Items: m.Items, UpdatedAt: m.UpdatedAt}
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	return c, nil
}

func (r *CartRepo) Save(ctx context.Context, c *domain.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m CartModel
		err := tx.First(&m, "user_id = ?", c.UserID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			m = CartModel{ID: c.ID, UserID: c.UserID}
			if m.ID == "" {
				m.ID = utils.NewID()
			}
		case err != nil:
			return err
		}
		m.Items = c.Snapshot()
		m.UpdatedAt = time.Now()
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		c.ID, c.UpdatedAt = m.ID, m.UpdatedAt
		return nil
	})
}

// ---- wishlists ----

type WishlistRepo struct{ db *gorm.DB }

func (r *WishlistRepo) FindByUser(ctx context.Context, userID string) (*domain.Wishlist, error) {
	var m WishlistModel
	err := r.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrWishlistNotFound
	}
	if err != nil {
		return nil, err
	}
	w := &domain.Wishlist{ID: m.ID, UserID: m.UserID, Items: m.Items}
	if w.Items == nil {
		w.Items = []string{}
	}
	return w, nil
}

func (r *WishlistRepo) Save(ctx context.Context, w *domain.Wishlist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m WishlistModel
		err := tx.First(&m, "user_id = ?", w.UserID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			m = WishlistModel{ID: w.ID, UserID: w.UserID}
			if m.ID == "" {
				m.ID = utils.NewID()
			}
		case err != nil:
			return err
		}
		m.Items = append([]string{}, w.Items...)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		w.ID = m.ID
		return nil
	})
}

// ---- orders ----

type OrderRepo struct{ db *gorm.DB }

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	o.ID = utils.NewID()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	m := OrderModel{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           o.Items,
		Total:           o.Total,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var rows []OrderModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *OrderRepo) FindForUser(ctx context.Context, id, userID string) (*domain.Order, error) {
	var m OrderModel
	err := r.db.WithContext(ctx).First(&m, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	o := m.toDomain()
	return &o, nil
}
