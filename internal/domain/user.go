package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Preferences drive the personalised recommendation query.
type Preferences struct {
	FaceShape       string   `json:"faceShape,omitempty"`
	StylePreference []string `json:"stylePreference,omitempty"`
	PriceRange      string   `json:"priceRange,omitempty"` // "low-high", e.g. "1000-3000"
	MetalPreference []string `json:"metalPreference,omitempty"`
}

type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Phone        string       `json:"phone,omitempty"`
	Address      *Address     `json:"address,omitempty"`
	Preferences  *Preferences `json:"preferences,omitempty"`
	Role         string       `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type UserRepository interface {
	// Create assigns u.ID and returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	// List filters by a case-insensitive substring of email or name when q is non-empty.
	List(ctx context.Context, offset, limit int, q string) ([]User, int64, error)
}
