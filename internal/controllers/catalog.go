package controllers

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/drstein77/quotedesk/internal/catalog"
	"github.com/drstein77/quotedesk/internal/models"
)

type categoryResponse struct {
	Category *models.Category  `json:"category"`
	Products []*models.Product `json:"products"`
}

func (h *BaseController) getCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories())
}

func (h *BaseController) getCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	cat, ok := h.catalog.CategoryBySlug(slug)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{
		Category: cat,
		Products: h.catalog.ProductsByCategory(slug),
	})
}

func (h *BaseController) getProducts(w http.ResponseWriter, r *http.Request) {
	f := catalog.Filter{
		CategorySlug: r.URL.Query().Get("category"),
		Query:        r.URL.Query().Get("q"),
	}
	if f.CategorySlug == "" && f.Query == "" {
		writeJSON(w, http.StatusOK, h.catalog.Products())
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.Search(f))
}

func (h *BaseController) getProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.catalog.ProductBySlug(chi.URLParam(r, "slug"))
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
