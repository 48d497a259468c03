// Package chatbot exposes the relay endpoint: one widget request in, one
// upstream completion request out, nothing retained between calls.
package chatbot

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/movix/backend/internal/model/chat"
	"github.com/movix/backend/pkg/utils"
)

// upstreamFailureReply is the only failure text callers ever see; real
// upstream errors stay in the server log.
const upstreamFailureReply = "Sorry, I am experiencing technical difficulties. Please try again later."

// Responder is the completion backend. A nil responder means the service is
// running without a configured credential.
type Responder interface {
	Respond(ctx context.Context, history []chat.Message, userMessage string) (string, error)
}

// Handler relays chat requests to the completion service.
type Handler struct {
	responder Responder
}

// New creates the relay handler. responder may be nil when the completion
// credential is absent; the endpoint then reports misconfiguration without
// attempting any upstream call.
func New(responder Responder) *Handler {
	return &Handler{responder: responder}
}

// RegisterRoutes mounts the relay endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chatbot", h.handleChat)
}

type chatRequest struct {
	Message             string              `json:"message"`
	ConversationHistory []chat.HistoryEntry `json:"conversationHistory"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	if h.responder == nil {
		utils.RespondError(w, http.StatusInternalServerError, "completion service is not configured")
		return
	}

	// The window arrives ordered; it is forwarded as-is, never reordered or
	// filtered here.
	history := make([]chat.Message, 0, len(payload.ConversationHistory))
	for _, entry := range payload.ConversationHistory {
		history = append(history, chat.Message{
			Role:    chat.ParseRole(entry.Role),
			Content: entry.Content,
		})
	}

	reply, err := h.responder.Respond(r.Context(), history, payload.Message)
	if err != nil {
		log.Printf("[chatbot] upstream completion failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, upstreamFailureReply)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{Response: reply})
}
