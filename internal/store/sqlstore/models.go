package sqlstore

import (
	"time"

	"glimmr/internal/domain"
)

// Nested documents are stored as JSON text columns so one schema works on
// both postgres and mysql.

type UserModel struct {
	ID           string              `gorm:"primaryKey;size:24"`
	Email        string              `gorm:"uniqueIndex;size:191;not null"`
	Name         string              `gorm:"size:128;not null"`
	PasswordHash string              `gorm:"size:100;not null"`
	Phone        string              `gorm:"size:32"`
	Address      *domain.Address     `gorm:"serializer:json;type:text"`
	Preferences  *domain.Preferences `gorm:"serializer:json;type:text"`
	Role         string              `gorm:"size:16;not null;default:user"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (UserModel) TableName() string { return "users" }

type ProductModel struct {
	ID             string                `gorm:"primaryKey;size:24"`
	Name           string                `gorm:"size:255;not null"`
	Description    string                `gorm:"type:text"`
	Category       string                `gorm:"size:64;index:idx_products_cat"`
	Subcategory    string                `gorm:"size:64;index:idx_products_cat"`
	Price          float64               `gorm:"index"`
	OriginalPrice  float64
	Discount       float64
	Images         []string              `gorm:"serializer:json;type:text"`
	Specifications domain.Specifications `gorm:"serializer:json;type:text"`
	InStock        bool                  `gorm:"index"`
	Quantity       int
	Tags           []string `gorm:"serializer:json;type:text"`
	RatingAverage  float64
	RatingCount    int
	CreatedAt      time.Time `gorm:"index"`
}

func (ProductModel) TableName() string { return "products" }

type CartModel struct {
	ID        string            `gorm:"primaryKey;size:24"`
	UserID    string            `gorm:"uniqueIndex;size:24;not null"`
	Items     []domain.CartItem `gorm:"serializer:json;type:text"`
	UpdatedAt time.Time
}

func (CartModel) TableName() string { return "carts" }

type WishlistModel struct {
	ID     string   `gorm:"primaryKey;size:24"`
	UserID string   `gorm:"uniqueIndex;size:24;not null"`
	Items  []string `gorm:"serializer:json;type:text"`
}

func (WishlistModel) TableName() string { return "wishlists" }

type OrderModel struct {
	ID              string             `gorm:"primaryKey;size:24"`
	UserID          string             `gorm:"index:idx_orders_user;size:24;not null"`
	Items           []domain.OrderItem `gorm:"serializer:json;type:text"`
	Total           float64
	Status          string          `gorm:"size:16;not null"`
	ShippingAddress *domain.Address `gorm:"serializer:json;type:text"`
	CreatedAt       time.Time       `gorm:"index:idx_orders_user"`
}

func (OrderModel) TableName() string { return "orders" }

func userFromDomain(u *domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Address:      u.Address,
		Preferences:  u.Preferences,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserModel) toDomain() domain.User {
	return domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		Address:      m.Address,
		Preferences:  m.Preferences,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func productFromDomain(p *domain.Product) ProductModel {
	return ProductModel{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Subcategory:    p.Subcategory,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Discount:       p.Discount,
		Images:         p.Images,
		Specifications: p.Specifications,
		InStock:        p.Availability.InStock,
		Quantity:       p.Availability.Quantity,
		Tags:           p.Tags,
		RatingAverage:  p.Ratings.Average,
		RatingCount:    p.Ratings.Count,
		CreatedAt:      p.CreatedAt,
	}
}

func (m *ProductModel) toDomain() domain.Product {
	p := domain.Product{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		Category:       m.Category,
		Subcategory:    m.Subcategory,
		Price:          m.Price,
		OriginalPrice:  m.OriginalPrice,
		Discount:       m.Discount,
		Images:         m.Images,
		Specifications: m.Specifications,
		Availability:   domain.Availability{InStock: m.InStock, Quantity: m.Quantity},
		Tags:           m.Tags,
		Ratings:        domain.Ratings{Average: m.RatingAverage, Count: m.RatingCount},
		CreatedAt:      m.CreatedAt,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

func (m *OrderModel) toDomain() domain.Order {
	o := domain.Order{
		ID:              m.ID,
		UserID:          m.UserID,
		Items:           m.Items,
		Total:           m.Total,
		Status:          m.Status,
		ShippingAddress: m.ShippingAddress,
		CreatedAt:       m.CreatedAt,
	}
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return o
}
