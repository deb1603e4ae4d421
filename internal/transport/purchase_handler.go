package transport

import (
	"errors"
	"net/http"

	"mute-store/internal/domain"
	"mute-store/internal/middleware"
	"mute-store/internal/repository"
	"mute-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PurchaseItemRequest is one line item of a checkout request
type PurchaseItemRequest struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre" validate:"required"`
	Precio   float64 `json:"precio" validate:"gte=0"`
	Talla    string  `json:"talla"`
	Cantidad int     `json:"cantidad" validate:"gte=1"`
	Imagen   string  `json:"imagen"`
}

// PurchaseRequest represents a checkout request. Card fields are declared so
// they can be stripped deliberately rather than silently dropped.
type PurchaseRequest struct {
	ClienteEmail string                `json:"cliente_email" validate:"required,email"`
	Productos    []PurchaseItemRequest `json:"productos" validate:"required,min=1,dive"`
	Total        float64               `json:"total" validate:"gte=0"`
	Telefono     string                `json:"telefono"`
	Direccion    string                `json:"direccion"`
	Ubicacion    *string               `json:"ubicacion,omitempty"`
	MetodoPago   string                `json:"metodo_pago"`
	CreditCard   string                `json:"creditCard,omitempty"`
	Tarjeta      string                `json:"tarjeta,omitempty"`
}

// PurchaseHandler handles checkout and purchase history requests
type PurchaseHandler struct {
	purchaseService service.PurchaseService
	logger          *zap.Logger
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService service.PurchaseService, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		logger:          logger,
	}
}

// RegisterRoutes registers the purchase routes
func (h *PurchaseHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/comprar", h.Record)
	r.Get("/auth/purchase", h.List)
}

// Record handles checkout
func (h *PurchaseHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Purchase validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]domain.PurchaseItem, len(req.Productos))
	for i, p := range req.Productos {
		items[i] = domain.PurchaseItem{
			ProductID: p.ID,
			Nombre:    p.Nombre,
			Precio:    p.Precio,
			Talla:     p.Talla,
			Cantidad:  p.Cantidad,
			Imagen:    p.Imagen,
		}
	}

	input := service.PurchaseInput{
		Email:      req.ClienteEmail,
		Productos:  items,
		Total:      req.Total,
		Telefono:   req.Telefono,
		Direccion:  req.Direccion,
		Ubicacion:  req.Ubicacion,
		MetodoPago: req.MetodoPago,
		CreditCard: req.CreditCard,
		Tarjeta:    req.Tarjeta,
	}

	purchase, err := h.purchaseService.Record(r.Context(), input)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Cliente no encontrado")
			return
		}

		h.logger.Error("Failed to record purchase", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to record purchase")
		return
	}

	h.logger.Info("Purchase recorded",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("email", purchase.Email),
	)
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Compra registrada con éxito"})
}

// List returns the purchase history for the email query parameter.
// No purchases is a valid, empty result.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	purchases, err := h.purchaseService.ListByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list purchases", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list purchases")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, purchases)
}
