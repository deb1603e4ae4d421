package transport

import (
	"net/http"

	"mute-store/internal/middleware"
	"mute-store/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler serves the read-only catalog listing
type ProductHandler struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productRepo repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
		logger:      logger,
	}
}

// RegisterRoutes registers the catalog routes. The listing lives under /auth
// for compatibility with existing clients.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/auth/productos", h.List)
}

// List returns every catalog product. An empty catalog is a 404.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	if len(products) == 0 {
		middleware.RespondWithError(w, http.StatusNotFound, "No hay productos disponibles")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}
