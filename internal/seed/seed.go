// Package seed loads a product catalog from YAML into a ProductRepository.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"glimmr/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type specDoc struct {
	Material    string `yaml:"material"`
	Weight      string `yaml:"weight"`
	Dimensions  string `yaml:"dimensions"`
	Gemstone    string `yaml:"gemstone"`
	MetalPurity string `yaml:"metalPurity"`
}

type productDoc struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Category       string   `yaml:"category"`
	Subcategory    string   `yaml:"subcategory"`
	Price          float64  `yaml:"price"`
	OriginalPrice  float64  `yaml:"originalPrice"`
	Discount       float64  `yaml:"discount"`
	Images         []string `yaml:"images"`
	Specifications specDoc  `yaml:"specifications"`
	Availability   struct {
		InStock  *bool `yaml:"inStock"`
		Quantity int   `yaml:"quantity"`
	} `yaml:"availability"`
	Tags    []string `yaml:"tags"`
	Ratings struct {
		Average float64 `yaml:"average"`
		Count   int     `yaml:"count"`
	} `yaml:"ratings"`
}

type catalogDoc struct {
	Products []productDoc `yaml:"products"`
}

// Parse decodes a catalog document. Unknown keys are rejected so typos in
// hand-written files surface early.
func Parse(r io.Reader) ([]domain.Product, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc catalogDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("seed: empty catalog")
		}
		return nil, fmt.Errorf("seed: decode: %w", err)
	}

	out := make([]domain.Product, 0, len(doc.Products))
	for i, d := range doc.Products {
		if d.Name == "" || d.Category == "" {
			return nil, fmt.Errorf("seed: product %d: name and category are required", i+1)
		}
		if d.Price < 0 {
			return nil, fmt.Errorf("seed: product %q: negative price", d.Name)
		}
		inStock := true // the storefront schema defaults to in stock
		if d.Availability.InStock != nil {
			inStock = *d.Availability.InStock
		}
		out = append(out, domain.Product{
			Name:          d.Name,
			Description:   d.Description,
			Category:      d.Category,
			Subcategory:   d.Subcategory,
			Price:         d.Price,
			OriginalPrice: d.OriginalPrice,
			Discount:      d.Discount,
			Images:        d.Images,
			Specifications: domain.Specifications{
				Material:    d.Specifications.Material,
				Weight:      d.Specifications.Weight,
				Dimensions:  d.Specifications.Dimensions,
				Gemstone:    d.Specifications.Gemstone,
				MetalPurity: d.Specifications.MetalPurity,
			},
			Availability: domain.Availability{InStock: inStock, Quantity: d.Availability.Quantity},
			Tags:         d.Tags,
			Ratings:      domain.Ratings{Average: d.Ratings.Average, Count: d.Ratings.Count},
		})
	}
	return out, nil
}

// Default returns the embedded sample catalog.
func Default() ([]domain.Product, error) { return Parse(bytes.NewReader(defaultCatalog)) }

// File parses the catalog at path, or the embedded one when path is empty.
func File(path string) ([]domain.Product, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

type Result struct {
	Deleted  int64
	Inserted int
}

// Run inserts products, first clearing the collection when reset is set.
func Run(ctx context.Context, repo domain.ProductRepository, products []domain.Product, reset bool, l *zap.Logger) (Result, error) {
	var res Result
	if reset {
		n, err := repo.DeleteAll(ctx)
		if err != nil {
			return res, fmt.Errorf("seed: clear products: %w", err)
		}
		res.Deleted = n
		l.Info("cleared existing products", zap.Int64("deleted", n))
	}
	for i := range products {
		p := products[i]
		if err := repo.Create(ctx, &p); err != nil {
			return res, fmt.Errorf("seed: insert %q: %w", p.Name, err)
		}
		res.Inserted++
		l.Debug("product inserted", zap.String("id", p.ID), zap.String("name", p.Name), zap.Float64("price", p.Price))
	}
	l.Info("catalog seeded", zap.Int("inserted", res.Inserted))
	return res, nil
}
