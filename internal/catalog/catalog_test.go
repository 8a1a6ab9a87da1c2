package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/drstein77/quotedesk/internal/models"
)

type nopLog struct{}

func (nopLog) Info(string, ...zap.Field) {}

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(DefaultSeed())
	require.NoError(t, err)
	return c
}

func TestNew_DefaultSeed(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	assert.Len(t, c.Categories(), 4)
	assert.Len(t, c.Products(), 6)

	// ordered by name
	products := c.Products()
	assert.Equal(t, "Heavy Duty Industrial Pump", products[0].Name)
	assert.Equal(t, "Safety Gloves - Heavy Duty", products[len(products)-1].Name)
}

func TestNew_ProductsShareCategory(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	pump, ok := c.ProductByID("prod-1")
	require.True(t, ok)
	press, ok := c.ProductByID("prod-5")
	require.True(t, ok)
	cat, ok := c.CategoryBySlug("industrial-equipment")
	require.True(t, ok)

	assert.Same(t, cat, pump.Category)
	assert.Same(t, cat, press.Category)
}

func TestNew_RejectsInvalidSeeds(t *testing.T) {
	t.Parallel()

	cats := []models.Category{{Name: "Safety Gear", Slug: "safety-gear"}}
	img := []string{"a.jpg"}

	tests := []struct {
		name string
		seed Seed
		want error
	}{
		{
			name: "duplicate product id",
			seed: Seed{Categories: cats, Products: []ProductSeed{
				{ID: "p1", Name: "A", Category: "safety-gear", Images: img},
				{ID: "p1", Name: "B", Category: "safety-gear", Images: img},
			}},
			want: ErrDuplicateProduct,
		},
		{
			name: "unknown category",
			seed: Seed{Categories: cats, Products: []ProductSeed{
				{ID: "p1", Name: "A", Category: "tools", Images: img},
			}},
			want: ErrUnknownCategory,
		},
		{
			name: "no image",
			seed: Seed{Categories: cats, Products: []ProductSeed{
				{ID: "p1", Name: "A", Category: "safety-gear"},
			}},
			want: ErrInvalidProduct,
		},
		{
			name: "duplicate category",
			seed: Seed{Categories: append(cats, models.Category{Name: "Safety gear"})},
			want: ErrDuplicateCategory,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.seed)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNew_DerivesSlugsAndDatasheet(t *testing.T) {
	t.Parallel()

	c, err := New(Seed{
		Categories: []models.Category{{Name: "Tools & Hardware"}},
		Products: []ProductSeed{
			{ID: "p1", Name: "Clé dynamométrique", Category: "tools-hardware", Images: []string{"a.jpg"}, Datasheet: "sheet.pdf"},
			{ID: "p2", Name: "Hammer", Category: "tools-hardware", Images: []string{"b.jpg"}},
		},
	})
	require.NoError(t, err)

	p, ok := c.ProductBySlug("cle-dynamometrique")
	require.True(t, ok)
	require.NotNil(t, p.Datasheet)
	assert.Equal(t, "sheet.pdf", *p.Datasheet)

	h, ok := c.ProductBySlug("hammer")
	require.True(t, ok)
	assert.Nil(t, h.Datasheet)
}

func TestLookups_NotFound(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)

	_, ok := c.ProductBySlug("nope")
	assert.False(t, ok)
	_, ok = c.CategoryBySlug("nope")
	assert.False(t, ok)
	_, ok = c.ProductByID("nope")
	assert.False(t, ok)
	assert.Empty(t, c.ProductsByCategory("nope"))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)

	ids := func(ps []*models.Product) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter", filter: Filter{}, want: []string{"prod-1", "prod-5", "prod-4", "prod-2", "prod-3", "prod-6"}},
		{name: "category", filter: Filter{CategorySlug: "safety-gear"}, want: []string{"prod-2", "prod-6"}},
		{name: "query on name, case insensitive", filter: Filter{Query: "  HELMET "}, want: []string{"prod-2"}},
		{name: "query on description", filter: Filter{Query: "short-circuit"}, want: []string{"prod-4"}},
		{name: "query on category name", filter: Filter{Query: "tools &"}, want: []string{"prod-3"}},
		{name: "category and query", filter: Filter{CategorySlug: "industrial-equipment", Query: "press"}, want: []string{"prod-5"}},
		{name: "no match", filter: Filter{Query: "submarine"}, want: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(c.Search(tt.filter)))
		})
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Tools & Hardware":           "tools-hardware",
		"Safety Gloves - Heavy Duty": "safety-gloves-heavy-duty",
		"SWH Négoce":                 "swh-negoce",
		"  100A breaker!":            "100a-breaker",
		"":                           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	doc := `
categories:
  - id: cat-1
    name: Safety Gear
    slug: safety-gear
    image: gear.jpg
products:
  - id: p1
    name: Helmet
    category: safety-gear
    description: Hard hat
    images: [helmet.jpg]
    specifications:
      - key: Standard
        value: EN 397
    datasheet: helmet.pdf
`
	seed, err := ParseYAML(strings.NewReader(doc))
	require.NoError(t, err)

	c, err := New(seed)
	require.NoError(t, err)

	p, ok := c.ProductBySlug("helmet")
	require.True(t, ok)
	assert.Equal(t, "Safety Gear", p.CategoryName())
	assert.Equal(t, []models.Specification{{Key: "Standard", Value: "EN 397"}}, p.Specifications)
}

func TestParseYAML_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := ParseYAML(strings.NewReader("products:\n  - id: p1\n    price: 10\n"))
	assert.Error(t, err)
}

func workbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", addr, &r))
	}
	return f
}

func TestParseExcel(t *testing.T) {
	t.Parallel()

	f := workbook(t, [][]interface{}{
		{"id", "name", "slug", "category_slug", "category_name", "description", "images", "specifications", "datasheet", "category_image"},
		{"p1", "Industrial Pump", "", "", "Industrial Equipment", "Pump", "pump.jpg|pump-2.jpg", "Flow Rate=500 L/min; Power=5.5 kW", "", "equipment.jpg"},
		{"p2", "Safety Helmet", "helmet", "safety-gear", "Safety Gear", "Helmet", "helmet.jpg", "", "helmet.pdf", ""},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	seed, err := ParseExcel(buf)
	require.NoError(t, err)
	require.Len(t, seed.Categories, 2)
	assert.Equal(t, "industrial-equipment", seed.Categories[0].Slug)
	assert.Equal(t, "equipment.jpg", seed.Categories[0].Image)

	c, err := New(seed)
	require.NoError(t, err)

	pump, ok := c.ProductBySlug("industrial-pump")
	require.True(t, ok)
	assert.Equal(t, []string{"pump.jpg", "pump-2.jpg"}, pump.Images)
	assert.Equal(t, []models.Specification{
		{Key: "Flow Rate", Value: "500 L/min"},
		{Key: "Power", Value: "5.5 kW"},
	}, pump.Specifications)

	helmet, ok := c.ProductBySlug("helmet")
	require.True(t, ok)
	require.NotNil(t, helmet.Datasheet)
	assert.Equal(t, "helmet.pdf", *helmet.Datasheet)
}

func TestParseExcel_MalformedSpecification(t *testing.T) {
	t.Parallel()

	f := workbook(t, [][]interface{}{
		{"p1", "Pump", "", "", "Equipment", "", "pump.jpg", "no separator"},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ParseExcel(buf)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("built-in", func(t *testing.T) {
		c, err := Load("", nopLog{})
		require.NoError(t, err)
		assert.Len(t, c.Products(), 6)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.yml")
		doc := "categories:\n  - name: Gear\nproducts:\n  - id: p1\n    name: Helmet\n    category: gear\n    images: [h.jpg]\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		c, err := Load(path, nopLog{})
		require.NoError(t, err)
		assert.Len(t, c.Products(), 1)
	})

	t.Run("xlsx file", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.xlsx")
		f := workbook(t, [][]interface{}{{"p1", "Pump", "", "", "Equipment", "", "pump.jpg"}})
		require.NoError(t, f.SaveAs(path))

		c, err := Load(path, nopLog{})
		require.NoError(t, err)
		assert.Len(t, c.ProductsByCategory("equipment"), 1)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.csv")
		require.NoError(t, os.WriteFile(path, []byte("id"), 0o600))

		_, err := Load(path, nopLog{})
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"), nopLog{})
		assert.Error(t, err)
	})
}
