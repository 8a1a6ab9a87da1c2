package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/drstein77/quotedesk/internal/basket"
	"github.com/drstein77/quotedesk/internal/middleware"
	"github.com/drstein77/quotedesk/internal/models"
)

type basketItem struct {
	Product  *models.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

type basketResponse struct {
	Items      []basketItem `json:"items"`
	TotalItems int          `json:"total_items"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *BaseController) sessionBasket(r *http.Request) *basket.Basket {
	return h.storage.Basket(middleware.SessionID(r.Context()))
}

func writeBasket(w http.ResponseWriter, b *basket.Basket) {
	entries := b.Entries()
	resp := basketResponse{Items: make([]basketItem, 0, len(entries))}
	for _, e := range entries {
		resp.Items = append(resp.Items, basketItem{Product: e.Product, Quantity: e.Quantity})
		resp.TotalItems += e.Quantity
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BaseController) getBasket(w http.ResponseWriter, r *http.Request) {
	writeBasket(w, h.sessionBasket(r))
}

func (h *BaseController) clearBasket(w http.ResponseWriter, r *http.Request) {
	b := h.sessionBasket(r)
	b.Clear()
	writeBasket(w, b)
}

func (h *BaseController) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, ok := h.catalog.ProductByID(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	b := h.sessionBasket(r)
	b.Add(p)
	writeBasket(w, b)
}

func (h *BaseController) isInBasket(w http.ResponseWriter, r *http.Request) {
	in := h.sessionBasket(r).IsInCart(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]bool{"in_cart": in})
}

func (h *BaseController) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	b := h.sessionBasket(r)
	b.UpdateQuantity(chi.URLParam(r, "id"), *req.Quantity)
	writeBasket(w, b)
}

func (h *BaseController) removeItem(w http.ResponseWriter, r *http.Request) {
	b := h.sessionBasket(r)
	b.Remove(chi.URLParam(r, "id"))
	writeBasket(w, b)
}
