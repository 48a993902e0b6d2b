package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/catalog"
)

type updateStockRequest struct {
	Stock *int `json:"stock"`
}

// CatalogHandler exposes the in-memory product catalog.
type CatalogHandler struct {
	store *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

func (h *CatalogHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.ListProducts)
	router.Get("/products/{id}", h.GetProductByID)
	router.Patch("/products/{id}/stock", h.UpdateStock)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to list products")
		respondWithError(w, http.StatusInternalServerError, KindInternal, "failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.store.GetProductByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("product_id", id).Msg("handler: failed to get product")
		respondWithError(w, http.StatusInternalServerError, KindInternal, "failed to get product")
		return
	}
	if product == nil {
		respondWithError(w, http.StatusNotFound, KindNotFound, "product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

// UpdateStock sets a product's stock level and fans the change out to the
// registered stock subscribers.
func (h *CatalogHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, KindValidation, "invalid request body")
		return
	}
	if req.Stock == nil || *req.Stock < 0 {
		respondWithError(w, http.StatusBadRequest, KindValidation, "stock must be an integer >= 0")
		return
	}

	product, err := h.store.UpdateStock(r.Context(), id, *req.Stock)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, KindNotFound, "product not found")
			return
		}
		log.Error().Err(err).Str("product_id", id).Msg("handler: failed to update stock")
		respondWithError(w, http.StatusInternalServerError, KindInternal, "failed to update stock")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}
