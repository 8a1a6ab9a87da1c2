package models

import "time"

type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Slug  string `json:"slug" yaml:"slug"`
	Image string `json:"image" yaml:"image"`
}

// Specification is one key/value row of a product's technical sheet.
type Specification struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Product is a catalog record. Products are shared read-only between the
// catalog and every basket that references them.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description"`
	Images         []string        `json:"images"`
	Specifications []Specification `json:"specifications,omitempty"`
	Category       *Category       `json:"category"`
	Datasheet      *string         `json:"datasheet,omitempty"`
}

// PrimaryImage returns the first image reference or an empty string.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CategoryName returns the name of the product category or an empty string.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// BasketLine is the plain record a basket entry is projected into when a
// quote request is submitted.
type BasketLine struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	CategoryName string `json:"category_name"`
	Quantity     int    `json:"quantity"`
	Image        string `json:"image"`
}

type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

type QuoteRequest struct {
	ID          string
	Contact     Contact
	Lines       []BasketLine
	Attachments []Attachment
	CreatedAt   time.Time
}

// QuoteReceipt is returned to the client after a quote request was stored.
type QuoteReceipt struct {
	ID          string       `json:"id"`
	Lines       []BasketLine `json:"lines"`
	Attachments []string     `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewQuoteReceipt builds the receipt for a stored quote request.
func NewQuoteReceipt(q QuoteRequest) QuoteReceipt {
	names := make([]string, 0, len(q.Attachments))
	for _, a := range q.Attachments {
		names = append(names, a.Filename)
	}
	lines := q.Lines
	if lines == nil {
		lines = []BasketLine{}
	}
	return QuoteReceipt{
		ID:          q.ID,
		Lines:       lines,
		Attachments: names,
		CreatedAt:   q.CreatedAt,
	}
}
