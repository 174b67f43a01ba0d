// Package mongostore persists the storefront collections in MongoDB. Field
// names follow the documents written by the previous Node service, so an
// existing database can be pointed at this one unchanged.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glimmr/internal/domain"
)

const (
	colUsers     = "users"
	colProducts  = "products"
	colCarts     = "carts"
	colWishlists = "wishlists"
	colOrders    = "orders"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 5 * time.Second
	queryTimeout = 10 * time.Second
)

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store { return &Store{db: db} }

func (s *Store) Users() domain.UserRepository {
	return &UserRepository{collection: s.db.Collection(colUsers)}
}

func (s *Store) Products() domain.ProductRepository {
	return &ProductRepository{collection: s.db.Collection(colProducts)}
}

func (s *Store) Carts() domain.CartRepository {
	return &CartRepository{collection: s.db.Collection(colCarts)}
}

func (s *Store) Wishlists() domain.WishlistRepository {
	return &WishlistRepository{collection: s.db.Collection(colWishlists)}
}

func (s *Store) Orders() domain.OrderRepository {
	return &OrderRepository{collection: s.db.Collection(colOrders)}
}

// EnsureIndexes creates the indexes the repositories rely on. It is
// idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colCarts: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colWishlists: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colOrders: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		colProducts: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "subcategory", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}
	for col, models := range specs {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col, err)
		}
	}
	return nil
}

// toOID parses a hex id; malformed ids are reported as notFound so callers
// answer 404 instead of 500.
func toOID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

func toOIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func hexOf(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}
