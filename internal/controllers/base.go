package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	"github.com/drstein77/quotedesk/internal/basket"
	"github.com/drstein77/quotedesk/internal/catalog"
	"github.com/drstein77/quotedesk/internal/middleware"
	"github.com/drstein77/quotedesk/internal/models"
	"github.com/drstein77/quotedesk/internal/quote"
)

// Catalog interface for product and category lookups
type Catalog interface {
	Categories() []*models.Category
	Products() []*models.Product
	ProductsByCategory(string) []*models.Product
	CategoryBySlug(string) (*models.Category, bool)
	ProductBySlug(string) (*models.Product, bool)
	ProductByID(string) (*models.Product, bool)
	Search(catalog.Filter) []*models.Product
}

// Storage interface for session baskets and stored quote requests
type Storage interface {
	Basket(sessionID string) *basket.Basket
	GetQuote(context.Context, string) (*models.QuoteRequest, error)
	Ping(context.Context) bool
}

// QuoteService interface for quote request submission
type QuoteService interface {
	Submit(context.Context, quote.Basket, models.Contact, []models.Attachment) (*models.QuoteRequest, error)
}

// Log interface for logging
type Log interface {
	Info(string, ...zap.Field)
	Error(string, ...zap.Field)
}

// BaseController struct for handling requests
type BaseController struct {
	catalog    Catalog
	storage    Storage
	quotes     QuoteService
	sessionTTL time.Duration
	log        Log
}

// NewBaseController creates a new BaseController instance
func NewBaseController(catalog Catalog, storage Storage, quotes QuoteService, sessionTTL time.Duration, log Log) *BaseController {
	instance := &BaseController{
		catalog:    catalog,
		storage:    storage,
		quotes:     quotes,
		sessionTTL: sessionTTL,
		log:        log,
	}

	return instance
}

// Route sets up the routes for the BaseController
func (h *BaseController) Route() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/ping", h.ping)

	r.Route("/api/v0", func(r chi.Router) {
		r.Get("/categories", h.getCategories)
		r.Get("/categories/{slug}", h.getCategory)
		r.Get("/products", h.getProducts)
		r.Get("/products/{slug}", h.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionMiddleware(h.sessionTTL))

			r.Get("/basket", h.getBasket)
			r.Delete("/basket", h.clearBasket)
			r.Post("/basket/items", h.addItem)
			r.Get("/basket/items/{id}", h.isInBasket)
			r.Put("/basket/items/{id}", h.updateItem)
			r.Delete("/basket/items/{id}", h.removeItem)

			r.Post("/quotes", h.postQuote)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.ArchiveTypeMiddleware)
			r.Get("/quotes/{id}/attachments", h.getAttachments)
		})
	})

	return r
}

func (h *BaseController) ping(w http.ResponseWriter, r *http.Request) {
	if !h.storage.Ping(r.Context()) {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msgs ...string) {
	writeJSON(w, status, errorResponse{Errors: msgs})
}
