package memory

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/dwikikusuma/fruit-stand/internal/catalog/app"
	"github.com/dwikikusuma/fruit-stand/internal/catalog/domain"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

//go:embed products.yaml
var defaultSeed []byte

type seedRow struct {
	ID    int    `koanf:"id"`
	Name  string `koanf:"name"`
	Price string `koanf:"price"`
	Image string `koanf:"image"`
}

type seedDoc struct {
	Products []seedRow `koanf:"products"`
}

// ProductRepo is a read-only catalog held in memory. It is built once and
// never mutated.
type ProductRepo struct {
	products []domain.Product
}

// NewDefaultProductRepo loads the embedded fruit-stand catalog.
func NewDefaultProductRepo() (*ProductRepo, error) {
	return NewProductRepoFromYAML(defaultSeed)
}

// NewProductRepoFromFile loads the catalog from a YAML seed file.
func NewProductRepoFromFile(path string) (*ProductRepo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return NewProductRepoFromYAML(b)
}

func NewProductRepoFromYAML(b []byte) (*ProductRepo, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	var doc seedDoc
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	products := make([]domain.Product, 0, len(doc.Products))
	seen := make(map[int]struct{}, len(doc.Products))
	for i, row := range doc.Products {
		p, err := toDomain(row)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %d: %w", i, p.ID, app.ErrInvalidInput)
		}
		seen[p.ID] = struct{}{}
		products = append(products, p)
	}

	return &ProductRepo{products: products}, nil
}

func toDomain(row seedRow) (domain.Product, error) {
	name := strings.TrimSpace(row.Name)
	if row.ID <= 0 || name == "" {
		return domain.Product{}, fmt.Errorf("id and name are required: %w", app.ErrInvalidInput)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
	if err != nil {
		return domain.Product{}, fmt.Errorf("price %q: %w", row.Price, app.ErrInvalidInput)
	}
	if price.IsNegative() {
		return domain.Product{}, fmt.Errorf("negative price %s: %w", price, app.ErrInvalidInput)
	}

	return domain.Product{
		ID:    row.ID,
		Name:  name,
		Price: price,
		Image: strings.TrimSpace(row.Image),
	}, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int) (domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, app.ErrNotFound
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}
