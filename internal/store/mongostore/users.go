package mongostore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glimmr/internal/domain"
)

type addressDoc struct {
	Street  string `bson:"street,omitempty"`
	City    string `bson:"city,omitempty"`
	State   string `bson:"state,omitempty"`
	Pincode string `bson:"pincode,omitempty"`
	Country string `bson:"country,omitempty"`
}

type preferencesDoc struct {
	FaceShape       string   `bson:"faceShape,omitempty"`
	StylePreference []string `bson:"stylePreference,omitempty"`
	PriceRange      string   `bson:"priceRange,omitempty"`
	MetalPreference []string `bson:"metalPreference,omitempty"`
}

type userDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	Phone       string             `bson:"phone,omitempty"`
	Address     *addressDoc        `bson:"address,omitempty"`
	Preferences *preferencesDoc    `bson:"preferences,omitempty"`
	Role        string             `bson:"role,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty"`
}

func addressToDoc(a *domain.Address) *addressDoc {
	if a == nil {
		return nil
	}
	return &addressDoc{Street: a.Street, City: a.City, State: a.State, Pincode: a.Pincode, Country: a.Country}
}

func (d *addressDoc) toDomain() *domain.Address {
	if d == nil {
		return nil
	}
	return &domain.Address{Street: d.Street, City: d.City, State: d.State, Pincode: d.Pincode, Country: d.Country}
}

func userToDoc(u *domain.User) userDoc {
	d := userDoc{
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Phone:     u.Phone,
		Address:   addressToDoc(u.Address),
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if p := u.Preferences; p != nil {
		d.Preferences = &preferencesDoc{
			FaceShape:       p.FaceShape,
			StylePreference: p.StylePreference,
			PriceRange:      p.PriceRange,
			MetalPreference: p.MetalPreference,
		}
	}
	return d
}

func (d *userDoc) toDomain() *domain.User {
	u := &domain.User{
		ID:           hexOf(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Phone:        d.Phone,
		Address:      d.Address.toDomain(),
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if p := d.Preferences; p != nil {
		u.Preferences = &domain.Preferences{
			FaceShape:       p.FaceShape,
			StylePreference: p.StylePreference,
			PriceRange:      p.PriceRange,
			MetalPreference: p.MetalPreference,
		}
	}
	return u
}

type UserRepository struct {
	collection *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	d := userToDoc(u)
	d.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	u.ID = d.ID.Hex()
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var d userDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return d.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := toOID(id, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	oid, err := toOID(u.ID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	u.UpdatedAt = time.Now()
	d := userToDoc(u)
	set := bson.M{
		"name":      d.Name,
		"password":  d.Password,
		"phone":     d.Phone,
		"role":      d.Role,
		"updatedAt": d.UpdatedAt,
	}
	unset := bson.M{}
	if d.Address != nil {
		set["address"] = d.Address
	} else {
		unset["address"] = ""
	}
	if d.Preferences != nil {
		set["preferences"] = d.Preferences
	} else {
		unset["preferences"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{}
	if s := strings.TrimSpace(q); s != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		filter["$or"] = []bson.M{{"email": rx}, {"name": rx}}
	}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password": 0})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	out := make([]domain.User, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, total, nil
}
