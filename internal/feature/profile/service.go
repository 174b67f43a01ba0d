// Package profile serves the signed-in user's own record, the
// preference-driven recommendations and the admin user listing.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"glimmr/internal/domain"
)

const (
	recommendationLimit = 5
	defaultPriceCeiling = 5000
)

// ErrBadRole is returned by SetRole for anything but user or admin.
var ErrBadRole = errors.New("role must be user or admin")

type Service struct {
	users    domain.UserRepository
	products domain.ProductRepository
	log      *zap.Logger
}

func NewService(users domain.UserRepository, products domain.ProductRepository, l *zap.Logger) *Service {
	return &Service{users: users, products: products, log: l.Named("profile")}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Patch carries only the fields the client sent.
type Patch struct {
	Name        *string             `json:"name"  binding:"omitempty,max=128"`
	Phone       *string             `json:"phone" binding:"omitempty,max=32"`
	Address     *domain.Address     `json:"address"`
	Preferences *domain.Preferences `json:"preferences"`
}

func (s *Service) Update(ctx context.Context, userID string, p Patch) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		u.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		u.Address = p.Address
	}
	if p.Preferences != nil {
		u.Preferences = p.Preferences
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RecommendationQuery builds the earring query for a set of preferences.
// nil preferences give the unfiltered in-stock earring list.
func RecommendationQuery(prefs *domain.Preferences) domain.ProductQuery {
	q := domain.ProductQuery{
		Category:    "earrings",
		InStockOnly: true,
		Limit:       recommendationLimit,
	}
	if prefs == nil {
		return q
	}
	if prefs.FaceShape != "" {
		q.AnyTags = []string{prefs.FaceShape}
	}
	if prefs.PriceRange != "" {
		ceiling := priceCeiling(prefs.PriceRange)
		q.MaxPrice = &ceiling
	}
	return q
}

// priceCeiling reads the upper bound of "low-high".
func priceCeiling(r string) float64 {
	parts := strings.Split(r, "-")
	if len(parts) < 2 {
		return defaultPriceCeiling
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || v == 0 {
		return defaultPriceCeiling
	}
	return float64(v)
}

// Recommendations tolerates a user that no longer exists.
func (s *Service) Recommendations(ctx context.Context, userID string) ([]domain.Product, error) {
	var prefs *domain.Preferences
	u, err := s.users.FindByID(ctx, userID)
	switch {
	case err == nil:
		prefs = u.Preferences
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, err
	}
	return s.products.Find(ctx, RecommendationQuery(prefs))
}

// UserPage is one page of the admin listing.
type UserPage struct {
	Items  []domain.User `json:"items"`
	Total  int64         `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

func (s *Service) ListUsers(ctx context.Context, offset, limit int, q string) (*UserPage, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	items, total, err := s.users.List(ctx, offset, limit, strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.User{}
	}
	return &UserPage{Items: items, Total: total, Offset: offset, Limit: limit}, nil
}

func (s *Service) SetRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, ErrBadRole
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.applyRole(ctx, u, role)
}

// Promote grants admin by email. Used by glimmrctl.
func (s *Service) Promote(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	return s.applyRole(ctx, u, domain.RoleAdmin)
}

func (s *Service) applyRole(ctx context.Context, u *domain.User, role string) (*domain.User, error) {
	if u.Role == role {
		return u, nil
	}
	u.Role = role
	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	s.log.Info("role changed", zap.String("user_id", u.ID), zap.String("role", role))
	return u, nil
}
