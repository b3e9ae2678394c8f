// Package catalog provides the read-only product list behind the catalog pages.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("product not found")

//go:embed catalog.yaml
var defaultCatalog []byte

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
}

type Category struct {
	Slug     string
	Title    string
	Products []Product
}

type fileFormat struct {
	Categories map[string]struct {
		Title    string `yaml:"title"`
		Products []struct {
			ID          string `yaml:"id"`
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
			// We keep price as a string in the file to avoid float rounding
			Price string `yaml:"price"`
		} `yaml:"products"`
	} `yaml:"categories"`
}

type Catalog struct {
	categories map[string]Category
	byName     map[string]Product
}

// Load reads the catalog from path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		categories: make(map[string]Category, len(f.Categories)),
		byName:     make(map[string]Product),
	}
	for slug, cat := range f.Categories {
		out := Category{Slug: slug, Title: cat.Title}
		for _, p := range cat.Products {
			if p.Name == "" {
				return nil, fmt.Errorf("catalog %s: product without name", slug)
			}
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return nil, fmt.Errorf("catalog %s/%s: bad price %q: %w", slug, p.Name, p.Price, err)
			}
			if price.IsNegative() {
				return nil, fmt.Errorf("catalog %s/%s: negative price", slug, p.Name)
			}
			if _, dup := c.byName[p.Name]; dup {
				return nil, fmt.Errorf("catalog: duplicate product %q", p.Name)
			}
			prod := Product{ID: p.ID, Name: p.Name, Description: p.Description, Category: slug, Price: price}
			out.Products = append(out.Products, prod)
			c.byName[p.Name] = prod
		}
		c.categories[slug] = out
	}
	return c, nil
}

// Category returns the category with the given slug.
func (c *Catalog) Category(slug string) (Category, bool) {
	cat, ok := c.categories[slug]
	return cat, ok
}

// Categories returns all categories sorted by slug.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Lookup finds a product by its display name.
func (c *Catalog) Lookup(name string) (Product, error) {
	p, ok := c.byName[name]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}
