package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/drstein77/quotedesk/internal/models"
)

type Log interface {
	Info(string, ...zap.Field)
}

// Workbook column order, one product per row.
const (
	colID = iota
	colName
	colSlug
	colCategorySlug
	colCategoryName
	colDescription
	colImages
	colSpecifications
	colDatasheet
	colCategoryImage
)

// Load builds the catalog from path, or the default catalog when path is
// empty. The format is picked by extension: .yaml/.yml or .xlsx.
func Load(path string, log Log) (*Catalog, error) {
	if path == "" {
		c, err := New(DefaultSeed())
		if err != nil {
			return nil, err
		}
		log.Info("Built-in catalog loaded", zap.Int("products", len(c.products)))
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var seed Seed
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		seed, err = ParseYAML(bytes.NewReader(data))
	case ".xlsx":
		seed, err = ParseExcel(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	c, err := New(seed)
	if err != nil {
		return nil, err
	}
	log.Info("Catalog loaded",
		zap.String("path", path),
		zap.Int("categories", len(c.categories)),
		zap.Int("products", len(c.products)))
	return c, nil
}

// ParseYAML decodes a seed document with top-level categories and products.
func ParseYAML(r io.Reader) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("failed to decode yaml catalog: %w", err)
	}
	return seed, nil
}

// ParseExcel reads the first sheet of a workbook. Categories are collected
// from the category columns of the product rows. A header row whose first
// cell is "id" is skipped.
func ParseExcel(r io.Reader) (Seed, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to open excel catalog: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Seed{}, fmt.Errorf("excel catalog has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Seed{}, fmt.Errorf("failed to get rows: %w", err)
	}

	var seed Seed
	seen := make(map[string]bool)
	for i, row := range rows {
		if i == 0 && strings.EqualFold(strings.TrimSpace(cell(row, colID)), "id") {
			continue
		}
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		catName := cell(row, colCategoryName)
		catSlug := cell(row, colCategorySlug)
		if catSlug == "" {
			catSlug = Slugify(catName)
		}
		if !seen[catSlug] {
			seen[catSlug] = true
			seed.Categories = append(seed.Categories, models.Category{
				Name:  catName,
				Slug:  catSlug,
				Image: cell(row, colCategoryImage),
			})
		}

		specs, err := parseSpecifications(cell(row, colSpecifications))
		if err != nil {
			return Seed{}, fmt.Errorf("row %d: %w", i+1, err)
		}

		seed.Products = append(seed.Products, ProductSeed{
			ID:             cell(row, colID),
			Name:           cell(row, colName),
			Slug:           cell(row, colSlug),
			Category:       catSlug,
			Description:    cell(row, colDescription),
			Images:         splitList(cell(row, colImages), "|"),
			Specifications: specs,
			Datasheet:      cell(row, colDatasheet),
		})
	}

	if len(seed.Products) == 0 {
		return Seed{}, fmt.Errorf("excel catalog has no products")
	}
	return seed, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseSpecifications reads "Key=Value; Key=Value" keeping the given order.
func parseSpecifications(s string) ([]models.Specification, error) {
	var specs []models.Specification
	for _, pair := range splitList(s, ";") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("malformed specification %q", pair)
		}
		specs = append(specs, models.Specification{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return specs, nil
}
