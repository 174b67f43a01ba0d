package mongostore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glimmr/internal/domain"
)

type specificationsDoc struct {
	Material    string `bson:"material,omitempty"`
	Weight      string `bson:"weight,omitempty"`
	Dimensions  string `bson:"dimensions,omitempty"`
	Gemstone    string `bson:"gemstone,omitempty"`
	MetalPurity string `bson:"metalPurity,omitempty"`
}

type availabilityDoc struct {
	InStock  bool `bson:"inStock"`
	Quantity int  `bson:"quantity"`
}

type ratingsDoc struct {
	Average float64 `bson:"average"`
	Count   int     `bson:"count"`
}

type productDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description,omitempty"`
	Category       string             `bson:"category"`
	Subcategory    string             `bson:"subcategory,omitempty"`
	Price          float64            `bson:"price"`
	OriginalPrice  float64            `bson:"originalPrice,omitempty"`
	Discount       float64            `bson:"discount,omitempty"`
	Images         []string           `bson:"images"`
	Specifications specificationsDoc  `bson:"specifications"`
	Availability   availabilityDoc    `bson:"availability"`
	Tags           []string           `bson:"tags"`
	Ratings        ratingsDoc         `bson:"ratings"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func productToDoc(p *domain.Product) productDoc {
	return productDoc{
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		Images:        nonNil(p.Images),
		Specifications: specificationsDoc{
			Material:    p.Specifications.Material,
			Weight:      p.Specifications.Weight,
			Dimensions:  p.Specifications.Dimensions,
			Gemstone:    p.Specifications.Gemstone,
			MetalPurity: p.Specifications.MetalPurity,
		},
		Availability: availabilityDoc{InStock: p.Availability.InStock, Quantity: p.Availability.Quantity},
		Tags:         nonNil(p.Tags),
		Ratings:      ratingsDoc{Average: p.Ratings.Average, Count: p.Ratings.Count},
		CreatedAt:    p.CreatedAt,
	}
}

func (d *productDoc) toDomain() domain.Product {
	return domain.Product{
		ID:            hexOf(d.ID),
		Name:          d.Name,
		Description:   d.Description,
		Category:      d.Category,
		Subcategory:   d.Subcategory,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		Images:        nonNil(d.Images),
		Specifications: domain.Specifications{
			Material:    d.Specifications.Material,
			Weight:      d.Specifications.Weight,
			Dimensions:  d.Specifications.Dimensions,
			Gemstone:    d.Specifications.Gemstone,
			MetalPurity: d.Specifications.MetalPurity,
		},
		Availability: domain.Availability{InStock: d.Availability.InStock, Quantity: d.Availability.Quantity},
		Tags:         nonNil(d.Tags),
		Ratings:      domain.Ratings{Average: d.Ratings.Average, Count: d.Ratings.Count},
		CreatedAt:    d.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var sortFields = map[string]string{
	domain.SortCreatedAt: "createdAt",
	domain.SortPrice:     "price",
	domain.SortName:      "name",
	domain.SortDiscount:  "discount",
	domain.SortRating:    "ratings.average",
}

// buildFilter translates a catalog query into a Mongo filter document.
func buildFilter(q domain.ProductQuery) bson.M {
	filter := bson.M{}
	var and []bson.M

	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Subcategory != "" {
		filter["subcategory"] = q.Subcategory
	}
	if len(q.Subcategories) > 0 {
		in := bson.M{"subcategory": bson.M{"$in": q.Subcategories}}
		if q.Subcategory != "" {
			and = append(and, in)
		} else {
			filter["subcategory"] = in["subcategory"]
		}
	}
	if q.InStockOnly {
		filter["availability.inStock"] = true
	}
	if len(q.AnyTags) > 0 {
		filter["tags"] = bson.M{"$in": q.AnyTags}
	}
	if q.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"name": rx},
			{"description": rx},
			{"tags": rx},
		}
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	return filter
}

func buildSort(q domain.ProductQuery) bson.D {
	field := sortFields[domain.NormalizeSort(q.SortBy)]
	dir := 1
	if q.Desc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

type ProductRepository struct {
	collection *mongo.Collection
}

func (r *ProductRepository) Find(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(buildSort(q)).
		SetLimit(int64(q.EffectiveLimit()))
	return r.find(ctx, buildFilter(q), opts)
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := toOID(id, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var d productDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	p := d.toDomain()
	return &p, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	oids := toOIDs(ids)
	if len(oids) == 0 {
		return []domain.Product{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	d := productToDoc(p)
	d.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, d); err != nil {
		return err
	}
	p.ID = d.ID.Hex()
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	oid, err := toOID(p.ID, domain.ErrProductNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	d := productToDoc(p)
	d.ID = oid
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := toOID(id, domain.ErrProductNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
