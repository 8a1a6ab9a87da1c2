package quote

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/drstein77/quotedesk/internal/attachments"
	"github.com/drstein77/quotedesk/internal/models"
)

var (
	ErrInvalidContact = errors.New("invalid contact details")
	ErrSubmitFailed   = errors.New("quote request could not be submitted")
)

// Sink stores quote requests.
type Sink interface {
	SaveQuote(context.Context, models.QuoteRequest) error
}

// Basket is the part of the quote basket a submission needs.
type Basket interface {
	Submit(send func([]models.BasketLine) error) error
}

type Log interface {
	Info(string, ...zap.Field)
	Error(string, ...zap.Field)
}

// Service turns contact details, attachments and a basket into a stored
// quote request.
type Service struct {
	sink  Sink
	log   Log
	now   func() time.Time
	newID func() string
}

// NewService creates a Service writing to sink.
func NewService(sink Sink, log Log) *Service {
	return &Service{
		sink:  sink,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Submit validates the request and hands it to the sink. Only the basket
// entries that went out with the request are removed, and only after the
// sink accepted it; on any error the basket is left as it was so the
// visitor can retry.
func (s *Service) Submit(ctx context.Context, b Basket, contact models.Contact, files []models.Attachment) (*models.QuoteRequest, error) {
	contact = normalize(contact)

	var set attachments.Set
	if err := multierr.Combine(ValidateContact(contact), set.Add(files...)); err != nil {
		return nil, err
	}

	req := models.QuoteRequest{
		ID:          s.newID(),
		Contact:     contact,
		Attachments: set.Files(),
		CreatedAt:   s.now().UTC(),
	}

	err := b.Submit(func(lines []models.BasketLine) error {
		req.Lines = lines
		return s.sink.SaveQuote(ctx, req)
	})
	if err != nil {
		s.log.Error("Failed to save quote request", zap.String("quote_id", req.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	s.log.Info("Quote request submitted",
		zap.String("quote_id", req.ID),
		zap.Int("lines", len(req.Lines)),
		zap.Int("attachments", set.Len()))
	return &req, nil
}

// ValidateContact checks the required fields. Every problem is reported.
func ValidateContact(c models.Contact) error {
	var errs error
	if c.Name == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: name is required", ErrInvalidContact))
	}
	if c.Email == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: email is required", ErrInvalidContact))
	} else if addr, err := mail.ParseAddress(c.Email); err != nil || addr.Address != c.Email {
		errs = multierr.Append(errs, fmt.Errorf("%w: email %q is not valid", ErrInvalidContact, c.Email))
	}
	if c.Message == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: message is required", ErrInvalidContact))
	}
	return errs
}

func normalize(c models.Contact) models.Contact {
	return models.Contact{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Company: strings.TrimSpace(c.Company),
		Message: strings.TrimSpace(c.Message),
	}
}
