package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/drstein77/quotedesk/internal/models"
)

var (
	ErrDuplicateProduct  = errors.New("duplicate product")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidProduct    = errors.New("invalid product")
)

// Seed is the raw content a catalog is built from.
type Seed struct {
	Categories []models.Category `yaml:"categories"`
	Products   []ProductSeed     `yaml:"products"`
}

// ProductSeed references its category by slug.
type ProductSeed struct {
	ID             string                 `yaml:"id"`
	Name           string                 `yaml:"name"`
	Slug           string                 `yaml:"slug"`
	Category       string                 `yaml:"category"`
	Description    string                 `yaml:"description"`
	Images         []string               `yaml:"images"`
	Specifications []models.Specification `yaml:"specifications"`
	Datasheet      string                 `yaml:"datasheet"`
}

// Filter narrows a product listing.
type Filter struct {
	CategorySlug string
	Query        string
}

// Catalog is a read-only set of categories and products. The records it
// hands out are shared and must not be modified by callers.
type Catalog struct {
	categories []*models.Category
	products   []*models.Product

	categoryBySlug map[string]*models.Category
	productBySlug  map[string]*models.Product
	productByID    map[string]*models.Product
}

// New validates the seed and builds the catalog. Categories and products
// are ordered by name.
func New(seed Seed) (*Catalog, error) {
	c := &Catalog{
		categoryBySlug: make(map[string]*models.Category, len(seed.Categories)),
		productBySlug:  make(map[string]*models.Product, len(seed.Products)),
		productByID:    make(map[string]*models.Product, len(seed.Products)),
	}

	for i := range seed.Categories {
		cat := seed.Categories[i]
		if cat.Slug == "" {
			cat.Slug = Slugify(cat.Name)
		}
		if cat.ID == "" {
			cat.ID = cat.Slug
		}
		if _, ok := c.categoryBySlug[cat.Slug]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, cat.Slug)
		}
		c.categoryBySlug[cat.Slug] = &cat
		c.categories = append(c.categories, &cat)
	}

	for _, ps := range seed.Products {
		p, err := c.buildProduct(ps)
		if err != nil {
			return nil, err
		}
		c.productByID[p.ID] = p
		c.productBySlug[p.Slug] = p
		c.products = append(c.products, p)
	}

	sort.SliceStable(c.categories, func(i, j int) bool {
		return strings.ToLower(c.categories[i].Name) < strings.ToLower(c.categories[j].Name)
	})
	sort.SliceStable(c.products, func(i, j int) bool {
		return strings.ToLower(c.products[i].Name) < strings.ToLower(c.products[j].Name)
	})

	return c, nil
}

func (c *Catalog) buildProduct(ps ProductSeed) (*models.Product, error) {
	if ps.ID == "" || ps.Name == "" {
		return nil, fmt.Errorf("%w: id and name are required (%q)", ErrInvalidProduct, ps.Name)
	}
	if len(ps.Images) == 0 {
		return nil, fmt.Errorf("%w: %s has no image", ErrInvalidProduct, ps.ID)
	}
	if _, ok := c.productByID[ps.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, ps.ID)
	}
	cat, ok := c.categoryBySlug[ps.Category]
	if !ok {
		return nil, fmt.Errorf("%w: %q for product %s", ErrUnknownCategory, ps.Category, ps.ID)
	}

	slug := ps.Slug
	if slug == "" {
		slug = Slugify(ps.Name)
	}
	if _, ok := c.productBySlug[slug]; ok {
		return nil, fmt.Errorf("%w: slug %s", ErrDuplicateProduct, slug)
	}

	p := &models.Product{
		ID:             ps.ID,
		Name:           ps.Name,
		Slug:           slug,
		Description:    ps.Description,
		Images:         ps.Images,
		Specifications: ps.Specifications,
		Category:       cat,
	}
	if ps.Datasheet != "" {
		datasheet := ps.Datasheet
		p.Datasheet = &datasheet
	}
	return p, nil
}

// Categories returns all categories.
func (c *Catalog) Categories() []*models.Category {
	return append([]*models.Category(nil), c.categories...)
}

// Products returns all products.
func (c *Catalog) Products() []*models.Product {
	return append([]*models.Product(nil), c.products...)
}

func (c *Catalog) CategoryBySlug(slug string) (*models.Category, bool) {
	cat, ok := c.categoryBySlug[slug]
	return cat, ok
}

func (c *Catalog) ProductBySlug(slug string) (*models.Product, bool) {
	p, ok := c.productBySlug[slug]
	return p, ok
}

func (c *Catalog) ProductByID(id string) (*models.Product, bool) {
	p, ok := c.productByID[id]
	return p, ok
}

// ProductsByCategory returns the products of the category with the given slug.
func (c *Catalog) ProductsByCategory(slug string) []*models.Product {
	return c.Search(Filter{CategorySlug: slug})
}

// Search filters by category slug first, then matches the query
// case-insensitively against name, description and category name.
func (c *Catalog) Search(f Filter) []*models.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	result := make([]*models.Product, 0, len(c.products))
	for _, p := range c.products {
		if f.CategorySlug != "" && (p.Category == nil || p.Category.Slug != f.CategorySlug) {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func matches(p *models.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.CategoryName()), query)
}
