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

type orderItemDoc struct {
	Product  primitive.ObjectID `bson:"product"`
	Name     string             `bson:"name,omitempty"`
	Price    float64            `bson:"price"`
	Quantity int                `bson:"quantity"`
}

type orderDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          primitive.ObjectID `bson:"userId"`
	Items           []orderItemDoc     `bson:"items"`
	Total           float64            `bson:"total"`
	Status          string             `bson:"status"`
	ShippingAddress *addressDoc        `bson:"shippingAddress,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func (d *orderDoc) toDomain() domain.Order {
	o := domain.Order{
		ID:              hexOf(d.ID),
		UserID:          hexOf(d.UserID),
		Items:           make([]domain.OrderItem, 0, len(d.Items)),
		Total:           d.Total,
		Status:          d.Status,
		ShippingAddress: d.ShippingAddress.toDomain(),
		CreatedAt:       d.CreatedAt,
	}
	for _, it := range d.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: it.Product.Hex(),
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return o
}

type OrderRepository struct {
	collection *mongo.Collection
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	uid, err := primitive.ObjectIDFromHex(o.UserID)
	if err != nil {
		return fmt.Errorf("order owner %q: %w", o.UserID, domain.ErrUserNotFound)
	}
	d := orderDoc{
		ID:              primitive.NewObjectID(),
		UserID:          uid,
		Items:           make([]orderItemDoc, 0, len(o.Items)),
		Total:           o.Total,
		Status:          o.Status,
		ShippingAddress: addressToDoc(o.ShippingAddress),
		CreatedAt:       o.CreatedAt,
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	for _, it := range o.Items {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return fmt.Errorf("order line %q: %w", it.ProductID, domain.ErrProductNotFound)
		}
		d.Items = append(d.Items, orderItemDoc{Product: pid, Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if _, err := r.collection.InsertOne(ctx, d); err != nil {
		return err
	}
	o.ID = d.ID.Hex()
	o.CreatedAt = d.CreatedAt
	return nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []domain.Order{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": uid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *OrderRepository) FindForUser(ctx context.Context, id, userID string) (*domain.Order, error) {
	oid, err := toOID(id, domain.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}
	uid, err := toOID(userID, domain.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var d orderDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid, "userId": uid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	o := d.toDomain()
	return &o, nil
}
