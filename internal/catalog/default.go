package catalog

import "github.com/drstein77/quotedesk/internal/models"

// DefaultSeed is the catalog served when no catalog file is configured.
func DefaultSeed() Seed {
	return Seed{
		Categories: []models.Category{
			{ID: "cat-1", Name: "Industrial Equipment", Slug: "industrial-equipment", Image: "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?w=800&q=80"},
			{ID: "cat-2", Name: "Safety Gear", Slug: "safety-gear", Image: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=800&q=80"},
			{ID: "cat-3", Name: "Tools & Hardware", Slug: "tools-hardware", Image: "https://images.unsplash.com/photo-1530124566582-a618bc2615dc?w=800&q=80"},
			{ID: "cat-4", Name: "Electrical Components", Slug: "electrical-components", Image: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=800&q=80"},
		},
		Products: []ProductSeed{
			{
				ID:          "prod-1",
				Name:        "Heavy Duty Industrial Pump",
				Slug:        "heavy-duty-industrial-pump",
				Category:    "industrial-equipment",
				Description: "High-performance industrial pump designed for demanding applications. Features robust construction, excellent flow rates, and reliable operation in harsh environments.",
				Images: []string{
					"https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?w=800&q=80",
					"https://images.unsplash.com/photo-1504328345606-18bbc8c9d7d1?w=800&q=80",
				},
				Specifications: []models.Specification{
					{Key: "Flow Rate", Value: "500 L/min"},
					{Key: "Pressure", Value: "10 bar"},
					{Key: "Power", Value: "5.5 kW"},
					{Key: "Weight", Value: "45 kg"},
				},
			},
			{
				ID:          "prod-2",
				Name:        "Industrial Safety Helmet",
				Slug:        "industrial-safety-helmet",
				Category:    "safety-gear",
				Description: "Premium safety helmet with advanced impact protection. Meets all international safety standards. Comfortable fit with adjustable suspension system.",
				Images:      []string{"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=800&q=80"},
				Specifications: []models.Specification{
					{Key: "Material", Value: "ABS Shell"},
					{Key: "Standard", Value: "EN 397"},
					{Key: "Weight", Value: "380g"},
					{Key: "Colors", Value: "White, Yellow, Red, Blue"},
				},
			},
			{
				ID:          "prod-3",
				Name:        "Professional Tool Set",
				Slug:        "professional-tool-set",
				Category:    "tools-hardware",
				Description: "Complete professional tool set with 150+ pieces. Chrome vanadium steel construction for durability. Organized carrying case included.",
				Images:      []string{"https://images.unsplash.com/photo-1530124566582-a618bc2615dc?w=800&q=80"},
				Specifications: []models.Specification{
					{Key: "Pieces", Value: "152"},
					{Key: "Material", Value: "Chrome Vanadium Steel"},
					{Key: "Case Type", Value: "Blow Mold"},
					{Key: "Warranty", Value: "Lifetime"},
				},
			},
			{
				ID:          "prod-4",
				Name:        "Industrial Circuit Breaker",
				Slug:        "industrial-circuit-breaker",
				Category:    "electrical-components",
				Description: "High-capacity circuit breaker for industrial applications. Provides reliable overcurrent and short-circuit protection.",
				Images:      []string{"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=800&q=80"},
				Specifications: []models.Specification{
					{Key: "Rating", Value: "100A"},
					{Key: "Poles", Value: "3"},
					{Key: "Breaking Capacity", Value: "25kA"},
					{Key: "Mounting", Value: "DIN Rail"},
				},
			},
			{
				ID:          "prod-5",
				Name:        "Hydraulic Press Machine",
				Slug:        "hydraulic-press-machine",
				Category:    "industrial-equipment",
				Description: "Industrial hydraulic press with precise pressure control. Ideal for metal forming, stamping, and assembly operations.",
				Images:      []string{"https://images.unsplash.com/photo-1504328345606-18bbc8c9d7d1?w=800&q=80"},
				Specifications: []models.Specification{
					{Key: "Capacity", Value: "100 Tons"},
					{Key: "Stroke", Value: "300mm"},
					{Key: "Table Size", Value: "600x600mm"},
					{Key: "Motor", Value: "15 kW"},
				},
			},
			{
				ID:          "prod-6",
				Name:        "Safety Gloves - Heavy Duty",
				Slug:        "safety-gloves-heavy-duty",
				Category:    "safety-gear",
				Description: "Cut-resistant safety gloves for industrial use. Excellent grip and dexterity while providing maximum protection.",
				Images:      []string{"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=800&q=80"},
				Specifications: []models.Specification{
					{Key: "Cut Level", Value: "A5"},
					{Key: "Material", Value: "HPPE + Steel"},
					{Key: "Coating", Value: "Nitrile"},
					{Key: "Sizes", Value: "S, M, L, XL"},
				},
			},
		},
	}
}
