package transport

import (
	"net/http"

	"mute-store/internal/chat"
	"mute-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ChatRequest represents a chatbot message
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse carries the generated reply
type ChatResponse struct {
	Response string `json:"response"`
}

// ChatHandler proxies customer messages to the generative-text service
type ChatHandler struct {
	generator chat.Generator
	logger    *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(generator chat.Generator, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		generator: generator,
		logger:    logger,
	}
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/chatbot", h.Chatbot)
}

// Chatbot forwards the customer message upstream and returns the reply
func (h *ChatHandler) Chatbot(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Chat validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.generator.Generate(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("Chat generation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "chat service unavailable")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ChatResponse{Response: reply})
}
