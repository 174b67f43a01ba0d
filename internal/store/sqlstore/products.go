package sqlstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"glimmr/internal/domain"
	"glimmr/pkg/utils"
)

var sortColumns = map[string]string{
	domain.SortCreatedAt: "created_at",
	domain.SortPrice:     "price",
	domain.SortName:      "name",
	domain.SortDiscount:  "discount",
	domain.SortRating:    "rating_average",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern lowercases s and wraps it for a substring LIKE match with the
// wildcard characters escaped.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// catalogScope applies a ProductQuery to a products query. Tags live in a
// JSON text column, so tag membership matches the quoted element.
func catalogScope(q domain.ProductQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.Category != "" {
			tx = tx.Where("category = ?", q.Category)
		}
		if q.Subcategory != "" {
			tx = tx.Where("subcategory = ?", q.Subcategory)
		}
		if len(q.Subcategories) > 0 {
			tx = tx.Where("subcategory IN ?", q.Subcategories)
		}
		if q.InStockOnly {
			tx = tx.Where("in_stock = ?", true)
		}
		if q.MinPrice != nil {
			tx = tx.Where("price >= ?", *q.MinPrice)
		}
		if q.MaxPrice != nil {
			tx = tx.Where("price <= ?", *q.MaxPrice)
		}
		if len(q.AnyTags) > 0 {
			or := tx.Session(&gorm.Session{NewDB: true})
			for i, tag := range q.AnyTags {
				like := `%"` + likeEscaper.Replace(tag) + `"%`
				if i == 0 {
					or = or.Where("tags LIKE ?", like)
				} else {
					or = or.Or("tags LIKE ?", like)
				}
			}
			tx = tx.Where(or)
		}
		if q.Search != "" {
			like := likePattern(q.Search)
			tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", like, like, like)
		}

		dir := " asc"
		if q.Desc {
			dir = " desc"
		}
		col := sortColumns[domain.NormalizeSort(q.SortBy)]
		return tx.Order(col + dir).Order("id" + dir).Limit(q.EffectiveLimit())
	}
}

type ProductRepo struct{ db *gorm.DB }

func (r *ProductRepo) Find(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	var rows []ProductModel
	if err := r.db.WithContext(ctx).Scopes(catalogScope(q)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var m ProductModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	p := m.toDomain()
	return &p, nil
}

func (r *ProductRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	var rows []ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	m := productFromDomain(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	m := productFromDomain(p)
	res := r.db.WithContext(ctx).Model(&ProductModel{}).Where("id = ?", p.ID).Select("*").Omit("id", "created_at").Updates(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ProductModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ProductModel{})
	return res.RowsAffected, res.Error
}

func toProducts(rows []ProductModel) []domain.Product {
	out := make([]domain.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}
