package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glimmr/internal/domain"
)

type cartItemDoc struct {
	Product  primitive.ObjectID `bson:"product"`
	Quantity int                `bson:"quantity"`
}

type cartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Items     []cartItemDoc      `bson:"items"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *cartDoc) toDomain() *domain.Cart {
	c := &domain.Cart{
		ID:        hexOf(d.ID),
		UserID:    hexOf(d.UserID),
		Items:     make([]domain.CartItem, 0, len(d.Items)),
		UpdatedAt: d.UpdatedAt,
	}
	for _, it := range d.Items {
		c.Items = append(c.Items, domain.CartItem{ProductID: it.Product.Hex(), Quantity: it.Quantity})
	}
	return c
}

func cartItemsToDocs(items []domain.CartItem) ([]cartItemDoc, error) {
	out := make([]cartItemDoc, 0, len(items))
	for _, it := range items {
		oid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("cart line %q: %w", it.ProductID, domain.ErrProductNotFound)
		}
		out = append(out, cartItemDoc{Product: oid, Quantity: it.Quantity})
	}
	return out, nil
}

type CartRepository struct {
	collection *mongo.Collection
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	uid, err := toOID(userID, domain.ErrCartNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var d cartDoc
	if err := r.collection.FindOne(ctx, bson.M{"userId": uid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return d.toDomain(), nil
}

// Save upserts on userId and reads back the stored document id.
func (r *CartRepository) Save(ctx context.Context, c *domain.Cart) error {
	uid, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return fmt.Errorf("cart owner %q: %w", c.UserID, domain.ErrUserNotFound)
	}
	items, err := cartItemsToDocs(c.Items)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	now := time.Now()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"items": items, "updatedAt": now}}

	var d cartDoc
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": uid}, update, opts).Decode(&d); err != nil {
		return err
	}
	c.ID = d.ID.Hex()
	c.UpdatedAt = now
	return nil
}
