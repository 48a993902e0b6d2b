package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/catalog"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/handler"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/order"
)

// NewRouter wires the HTTP surface over the already-constructed components.
func NewRouter(svc order.Service, products *catalog.Store) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	handler.NewOrderHandler(svc).RegisterRoutes(r)
	handler.NewCatalogHandler(products).RegisterRoutes(r)

	return r
}
