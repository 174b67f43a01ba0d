package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glimmr/internal/domain"
)

type wishlistDoc struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	UserID primitive.ObjectID   `bson:"userId"`
	Items  []primitive.ObjectID `bson:"items"`
}

type WishlistRepository struct {
	collection *mongo.Collection
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID string) (*domain.Wishlist, error) {
	uid, err := toOID(userID, domain.ErrWishlistNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var d wishlistDoc
	if err := r.collection.FindOne(ctx, bson.M{"userId": uid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWishlistNotFound
		}
		return nil, err
	}
	w := &domain.Wishlist{ID: hexOf(d.ID), UserID: userID, Items: make([]string, 0, len(d.Items))}
	for _, id := range d.Items {
		w.Items = append(w.Items, id.Hex())
	}
	return w, nil
}

func (r *WishlistRepository) Save(ctx context.Context, w *domain.Wishlist) error {
	uid, err := primitive.ObjectIDFromHex(w.UserID)
	if err != nil {
		return fmt.Errorf("wishlist owner %q: %w", w.UserID, domain.ErrUserNotFound)
	}
	items := make([]primitive.ObjectID, 0, len(w.Items))
	for _, id := range w.Items {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return fmt.Errorf("wishlist item %q: %w", id, domain.ErrProductNotFound)
		}
		items = append(items, oid)
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var d wishlistDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"userId": uid}, bson.M{"$set": bson.M{"items": items}}, opts).Decode(&d)
	if err != nil {
		return err
	}
	w.ID = d.ID.Hex()
	return nil
}
