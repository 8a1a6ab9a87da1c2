package basket

import (
	"sync"

	"github.com/drstein77/quotedesk/internal/models"
)

// Entry pairs a borrowed product with the requested quantity.
type Entry struct {
	Product  *models.Product
	Quantity int
}

// Basket is the quote basket of one browsing session. Entries are kept in
// insertion order and indexed by product ID. Quantity is always >= 1.
type Basket struct {
	mx       sync.Mutex
	submitMx sync.Mutex
	entries  []*Entry
	index   map[string]*Entry
}

// New creates an empty basket.
func New() *Basket {
	return &Basket{
		index: make(map[string]*Entry),
	}
}

// Add inserts the product with quantity 1 unless it is already present.
// A repeated Add leaves the existing quantity untouched.
func (b *Basket) Add(p *models.Product) {
	if p == nil || p.ID == "" {
		panic("basket: add called with a product without identifier")
	}

	b.mx.Lock()
	defer b.mx.Unlock()

	if _, ok := b.index[p.ID]; ok {
		return
	}
	e := &Entry{Product: p, Quantity: 1}
	b.entries = append(b.entries, e)
	b.index[p.ID] = e
}

// Remove deletes the entry for productID if present.
func (b *Basket) Remove(productID string) {
	b.mx.Lock()
	defer b.mx.Unlock()

	b.remove(productID)
}

// UpdateQuantity replaces the quantity of an existing entry. A quantity
// of zero or less removes the entry; an absent productID is left absent.
func (b *Basket) UpdateQuantity(productID string, quantity int) {
	b.mx.Lock()
	defer b.mx.Unlock()

	if quantity <= 0 {
		b.remove(productID)
		return
	}
	if e, ok := b.index[productID]; ok {
		e.Quantity = quantity
	}
}

// Clear removes all entries.
func (b *Basket) Clear() {
	b.mx.Lock()
	defer b.mx.Unlock()

	b.entries = nil
	b.index = make(map[string]*Entry)
}

// IsInCart reports whether the basket holds an entry for productID.
func (b *Basket) IsInCart(productID string) bool {
	b.mx.Lock()
	defer b.mx.Unlock()

	_, ok := b.index[productID]
	return ok
}

// TotalItems returns the sum of quantities over all entries.
func (b *Basket) TotalItems() int {
	b.mx.Lock()
	defer b.mx.Unlock()

	total := 0
	for _, e := range b.entries {
		total += e.Quantity
	}
	return total
}

// Len returns the number of distinct products in the basket.
func (b *Basket) Len() int {
	b.mx.Lock()
	defer b.mx.Unlock()

	return len(b.entries)
}

// Entries returns a snapshot of the entries in insertion order. The
// products are shared, the entries are copies.
func (b *Basket) Entries() []Entry {
	b.mx.Lock()
	defer b.mx.Unlock()

	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, *e)
	}
	return out
}

// Project converts the current entries into submission lines.
func (b *Basket) Project() []models.BasketLine {
	b.mx.Lock()
	defer b.mx.Unlock()

	return b.project()
}

// Submit projects the basket and passes the lines to send. Submissions of
// one basket run one at a time. Other operations stay available while send
// runs. When send succeeds, only the entries it received are removed: an
// entry added, re-added or given another quantity in the meantime stays.
func (b *Basket) Submit(send func([]models.BasketLine) error) error {
	b.submitMx.Lock()
	defer b.submitMx.Unlock()

	b.mx.Lock()
	sent := make(map[*Entry]int, len(b.entries))
	for _, e := range b.entries {
		sent[e] = e.Quantity
	}
	lines := b.project()
	b.mx.Unlock()

	if err := send(lines); err != nil {
		return err
	}

	b.mx.Lock()
	defer b.mx.Unlock()

	for e, qty := range sent {
		if b.index[e.Product.ID] == e && e.Quantity == qty {
			b.remove(e.Product.ID)
		}
	}
	return nil
}

func (b *Basket) project() []models.BasketLine {
	lines := make([]models.BasketLine, 0, len(b.entries))
	for _, e := range b.entries {
		lines = append(lines, models.BasketLine{
			ProductID:    e.Product.ID,
			Name:         e.Product.Name,
			Slug:         e.Product.Slug,
			CategoryName: e.Product.CategoryName(),
			Quantity:     e.Quantity,
			Image:        e.Product.PrimaryImage(),
		})
	}
	return lines
}

func (b *Basket) remove(productID string) {
	if _, ok := b.index[productID]; !ok {
		return
	}
	delete(b.index, productID)
	for i, e := range b.entries {
		if e.Product.ID == productID {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			break
		}
	}
}
