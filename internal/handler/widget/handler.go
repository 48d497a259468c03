// Package widget exposes the chat widget sessions over REST and over a
// websocket gateway for browser shells that keep a live connection.
package widget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	widgetservice "github.com/movix/backend/internal/service/widget"
	"github.com/movix/backend/pkg/utils"
)

// Handler serves the widget session REST surface.
type Handler struct {
	widgetSvc *widgetservice.Service
}

// New creates the widget handler.
func New(widgetSvc *widgetservice.Service) *Handler {
	return &Handler{widgetSvc: widgetSvc}
}

// RegisterRoutes mounts the widget session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/widget/sessions", func(r chi.Router) {
		r.Post("/", h.handleCreateSession)
		r.Get("/{sessionID}", h.handleGetSession)
		r.Get("/{sessionID}/messages", h.handleTranscript)
		r.Post("/{sessionID}/messages", h.handleSubmit)
		r.Post("/{sessionID}/clear", h.handleClear)
		r.Post("/{sessionID}/input", h.handleSetInput)
		r.Post("/{sessionID}/visibility", h.handleVisibility)
	})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.widgetSvc.CreateSession()
	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.widgetSvc.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	messages, err := h.widgetSvc.Transcript(chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	botMsg, err := h.widgetSvc.Submit(r.Context(), chi.URLParam(r, "sessionID"), payload.Message)
	if err != nil {
		utils.RespondError(w, submitStatus(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, botMsg)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	seeded, err := h.widgetSvc.Clear(chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, seeded)
}

func (h *Handler) handleSetInput(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.widgetSvc.SetInput(chi.URLParam(r, "sessionID"), payload.Input); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleVisibility(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Action string `json:"action"`
		Width  int    `json:"width"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")

	var visibility widgetservice.Visibility
	var err error
	switch payload.Action {
	case "open":
		visibility, err = h.widgetSvc.Open(sessionID)
	case "close":
		visibility, err = h.widgetSvc.Close(sessionID)
	case "toggle_fullscreen":
		visibility, err = h.widgetSvc.ToggleFullscreen(sessionID)
	case "viewport":
		visibility, err = h.widgetSvc.ObserveViewport(sessionID, payload.Width)
	default:
		utils.RespondError(w, http.StatusBadRequest, "unknown visibility action")
		return
	}

	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, widgetservice.ErrNotOpen) {
			status = http.StatusConflict
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]widgetservice.Visibility{"visibility": visibility})
}

func submitStatus(err error) int {
	switch {
	case errors.Is(err, widgetservice.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, widgetservice.ErrEmptyMessage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, widgetservice.ErrReplyPending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
