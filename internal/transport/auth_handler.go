package transport

import (
	"errors"
	"net/http"

	"mute-store/internal/middleware"
	"mute-store/internal/repository"
	"mute-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Nombre    string  `json:"nombre" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ClerkRequest represents the external identity sync payload
type ClerkRequest struct {
	ID     string `json:"id" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Nombre string `json:"nombre" validate:"required"`
}

// TokenResponse is returned on successful registration and login
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// MessageResponse is a bare confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthHandler handles HTTP requests for registration, login, profile, and
// external identity sync
type AuthHandler struct {
	customerService service.CustomerService
	logger          *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(customerService service.CustomerService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware, rateLimiter func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if rateLimiter != nil {
				r.Use(rateLimiter)
			}
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Post("/clerk", h.SyncClerk)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/user", h.GetUser)
		})
	})
}

// Register handles customer registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.customerService.Register(r.Context(), req.Nombre, req.Email, req.Password, req.Telefono, req.Direccion)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerAlreadyExists) {
			middleware.RespondWithError(w, http.StatusBadRequest, "El correo ya está registrado.")
			return
		}

		h.logger.Error("Registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register customer")
		return
	}

	h.logger.Info("Customer registered", zap.String("email", req.Email))
	middleware.RespondWithJSON(w, http.StatusOK, TokenResponse{
		Message: "Registro exitoso",
		Token:   token,
	})
}

// Login handles customer authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.customerService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Credenciales inválidas")
			return
		}

		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("Customer logged in", zap.String("email", req.Email))
	middleware.RespondWithJSON(w, http.StatusOK, TokenResponse{
		Message: "Login exitoso",
		Token:   token,
	})
}

// GetUser returns the authenticated customer's profile. The password hash
// never serializes (see domain.Customer).
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetEmail(r.Context())
	if !ok {
		h.logger.Error("Email not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	customer, err := h.customerService.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}

		h.logger.Error("Failed to get customer profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customer)
}

// SyncClerk handles the external identity provider sync
func (h *AuthHandler) SyncClerk(w http.ResponseWriter, r *http.Request) {
	var req ClerkRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Clerk sync validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.customerService.SyncExternal(r.Context(), req.ID, req.Email, req.Nombre)
	if err != nil {
		h.logger.Error("Clerk sync failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save external user")
		return
	}

	message := "Usuario ya existe"
	if created {
		message = "Usuario registrado exitosamente"
		h.logger.Info("External customer synced", zap.String("external_id", req.ID))
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: message})
}
