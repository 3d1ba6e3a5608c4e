package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrUnknownProduct = errors.New("unknown product")

// Product is the per-button metadata the storefront page carries.
type Product struct {
	ID          string          `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	WeeklyLimit int             `json:"weeklyLimit"`
}

// Catalog is an ordered, read-only product list.
type Catalog struct {
	products []Product
	byID     map[string]int
}

type fileProduct struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	WeeklyLimit int    `yaml:"weeklyLimit"`
}

type file struct {
	Products []fileProduct `yaml:"products"`
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	products := make([]Product, 0, len(f.Products))
	for i, fp := range f.Products {
		price, err := decimal.NewFromString(fp.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d (%s): invalid price %q: %w", i, fp.ID, fp.Price, err)
		}
		products = append(products, Product{
			ID:          fp.ID,
			Name:        fp.Name,
			Price:       price,
			WeeklyLimit: fp.WeeklyLimit,
		})
	}
	return New(products)
}

func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		switch {
		case p.ID == "":
			return nil, errors.New("product id is required")
		case p.Price.IsNegative():
			return nil, fmt.Errorf("product %s: price must not be negative", p.ID)
		case p.WeeklyLimit < 0:
			return nil, fmt.Errorf("product %s: weekly limit must not be negative", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %s: duplicate id", p.ID)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Lookup(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	return c.products[i], nil
}

// Limits returns productID → weekly limit for every product.
func (c *Catalog) Limits() map[string]int {
	out := make(map[string]int, len(c.products))
	for _, p := range c.products {
		out[p.ID] = p.WeeklyLimit
	}
	return out
}
