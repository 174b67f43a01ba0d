// Package identity handles registration and login.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"glimmr/internal/core/auth"
	"glimmr/internal/domain"
	"glimmr/pkg/utils"
)

type Service struct {
	users     domain.UserRepository
	carts     domain.CartRepository
	wishlists domain.WishlistRepository
	jwt       *auth.JWTer
	log       *zap.Logger
}

func NewService(users domain.UserRepository, carts domain.CartRepository, wishlists domain.WishlistRepository, jwt *auth.JWTer, l *zap.Logger) *Service {
	return &Service{users: users, carts: carts, wishlists: wishlists, jwt: jwt, log: l.Named("identity")}
}

type RegisterInput struct {
	Name     string `json:"name"     binding:"required,max=128"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Phone    string `json:"phone"    binding:"omitempty,max=32"`
}

// Session is what register and login hand back to the client.
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register creates the account plus its empty cart and wishlist.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, domain.NewCart(u.ID)); err != nil {
		return nil, fmt.Errorf("provision cart: %w", err)
	}
	if err := s.wishlists.Save(ctx, domain.NewWishlist(u.ID)); err != nil {
		return nil, fmt.Errorf("provision wishlist: %w", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return s.session(u)
}

// Login never says which of email or password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *Service) session(u *domain.User) (*Session, error) {
	tok, err := s.jwt.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: tok, User: u}, nil
}
