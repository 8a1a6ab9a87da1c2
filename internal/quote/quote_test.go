package quote

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/drstein77/quotedesk/internal/attachments"
	"github.com/drstein77/quotedesk/internal/basket"
	"github.com/drstein77/quotedesk/internal/models"
)

type nopLog struct{}

func (nopLog) Info(string, ...zap.Field)  {}
func (nopLog) Error(string, ...zap.Field) {}

type fakeSink struct {
	saved []models.QuoteRequest
	err   error
}

func (f *fakeSink) SaveQuote(_ context.Context, q models.QuoteRequest) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, q)
	return nil
}

func newTestService(sink Sink) *Service {
	s := NewService(sink, nopLog{})
	s.now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }
	s.newID = func() string { return "quote-1" }
	return s
}

func product(id string) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     "Product " + id,
		Slug:     "product-" + id,
		Images:   []string{id + ".jpg"},
		Category: &models.Category{Name: "Tools & Hardware", Slug: "tools-hardware"},
	}
}

func validContact() models.Contact {
	return models.Contact{
		Name:    "Jane Doe",
		Email:   "jane@company.com",
		Company: "ACME",
		Message: "Please quote the items below.",
	}
}

func TestSubmit_SuccessClearsBasket(t *testing.T) {
	t.Parallel()

	b := basket.New()
	b.Add(product("p1"))
	b.Add(product("p2"))
	b.UpdateQuantity("p2", 4)

	sink := &fakeSink{}
	s := newTestService(sink)

	q, err := s.Submit(context.Background(), b, validContact(), []models.Attachment{
		{Filename: "plan.pdf", ContentType: "application/pdf", Size: 2048},
	})
	require.NoError(t, err)
	require.Len(t, sink.saved, 1)

	saved := sink.saved[0]
	assert.Equal(t, "quote-1", saved.ID)
	require.Len(t, saved.Lines, 2)
	assert.Equal(t, "p1", saved.Lines[0].ProductID)
	assert.Equal(t, 1, saved.Lines[0].Quantity)
	assert.Equal(t, "p2", saved.Lines[1].ProductID)
	assert.Equal(t, 4, saved.Lines[1].Quantity)
	assert.Equal(t, "Tools & Hardware", saved.Lines[1].CategoryName)
	require.Len(t, saved.Attachments, 1)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC), saved.CreatedAt)
	assert.Equal(t, saved.ID, q.ID)

	assert.Equal(t, 0, b.TotalItems())
	assert.Empty(t, b.Entries())
}

func TestSubmit_SinkFailureKeepsBasket(t *testing.T) {
	t.Parallel()

	b := basket.New()
	b.Add(product("p1"))
	b.UpdateQuantity("p1", 3)

	s := newTestService(&fakeSink{err: errors.New("connection refused")})

	_, err := s.Submit(context.Background(), b, validContact(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmitFailed)

	assert.True(t, b.IsInCart("p1"))
	assert.Equal(t, 3, b.TotalItems())
}

func TestSubmit_InvalidAttachmentsAreNotSent(t *testing.T) {
	t.Parallel()

	b := basket.New()
	b.Add(product("p1"))

	files := make([]models.Attachment, 0, attachments.MaxFiles+1)
	for i := 0; i <= attachments.MaxFiles; i++ {
		files = append(files, models.Attachment{Filename: fmt.Sprintf("f%d.png", i), ContentType: "image/png", Size: 10})
	}

	sink := &fakeSink{}
	_, err := newTestService(sink).Submit(context.Background(), b, validContact(), files)
	require.Error(t, err)
	assert.ErrorIs(t, err, attachments.ErrTooManyFiles)
	assert.Empty(t, sink.saved)
	assert.Equal(t, 1, b.Len())
}

func TestSubmit_EmptyBasketIsAccepted(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	q, err := newTestService(sink).Submit(context.Background(), basket.New(), validContact(), nil)
	require.NoError(t, err)
	assert.Empty(t, q.Lines)
	assert.Len(t, sink.saved, 1)
}

func TestSubmit_TrimsContact(t *testing.T) {
	t.Parallel()

	c := validContact()
	c.Name = "  Jane Doe "
	c.Email = " jane@company.com"

	sink := &fakeSink{}
	_, err := newTestService(sink).Submit(context.Background(), basket.New(), c, nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", sink.saved[0].Contact.Name)
	assert.Equal(t, "jane@company.com", sink.saved[0].Contact.Email)
}

func TestValidateContact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*models.Contact)
		wantErrs int
	}{
		{name: "valid", mutate: func(*models.Contact) {}},
		{name: "optional fields empty", mutate: func(c *models.Contact) { c.Phone, c.Company = "", "" }},
		{name: "missing name", mutate: func(c *models.Contact) { c.Name = "" }, wantErrs: 1},
		{name: "missing email", mutate: func(c *models.Contact) { c.Email = "" }, wantErrs: 1},
		{name: "bad email", mutate: func(c *models.Contact) { c.Email = "jane-at-company" }, wantErrs: 1},
		{name: "display name email", mutate: func(c *models.Contact) { c.Email = "Jane <jane@company.com>" }, wantErrs: 1},
		{name: "everything missing", mutate: func(c *models.Contact) { *c = models.Contact{} }, wantErrs: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validContact()
			tt.mutate(&c)
			err := ValidateContact(c)
			if tt.wantErrs == 0 {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidContact)
			assert.Len(t, multierr.Errors(err), tt.wantErrs)
		})
	}
}

type blockingSink struct {
	entered chan struct{}
	release chan struct{}
	saved   []models.QuoteRequest
}

func (f *blockingSink) SaveQuote(_ context.Context, q models.QuoteRequest) error {
	close(f.entered)
	<-f.release
	f.saved = append(f.saved, q)
	return nil
}

func TestSubmit_KeepsItemsAddedDuringSave(t *testing.T) {
	t.Parallel()

	b := basket.New()
	b.Add(product("p1"))

	sink := &blockingSink{entered: make(chan struct{}), release: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		_, err := newTestService(sink).Submit(context.Background(), b, validContact(), nil)
		done <- err
	}()

	<-sink.entered
	b.Add(product("p2"))
	close(sink.release)
	require.NoError(t, <-done)

	require.Len(t, sink.saved, 1)
	require.Len(t, sink.saved[0].Lines, 1)
	assert.Equal(t, "p1", sink.saved[0].Lines[0].ProductID)

	assert.False(t, b.IsInCart("p1"))
	assert.True(t, b.IsInCart("p2"))
	assert.Equal(t, 1, b.TotalItems())
}

func TestSubmit_ReportsContactAndFileErrorsTogether(t *testing.T) {
	t.Parallel()

	c := validContact()
	c.Name = ""
	files := []models.Attachment{
		{Filename: "notes.txt", ContentType: "text/plain", Size: 10},
	}

	sink := &fakeSink{}
	_, err := newTestService(sink).Submit(context.Background(), basket.New(), c, files)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrInvalidContact)
	assert.ErrorIs(t, err, attachments.ErrUnsupportedType)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Empty(t, sink.saved)
}
