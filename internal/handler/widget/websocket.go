package widget

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	widgetservice "github.com/movix/backend/internal/service/widget"
)

// WebSocketHandler drives a widget session over one live connection:
// submit/clear/visibility events in, message and state events out.
type WebSocketHandler struct {
	widgetSvc *widgetservice.Service
	upgrader  websocket.Upgrader
}

// NewWebSocketHandler creates the websocket gateway.
func NewWebSocketHandler(widgetSvc *widgetservice.Service) *WebSocketHandler {
	return &WebSocketHandler{
		widgetSvc: widgetSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes mounts the gateway route.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/widget/ws/{sessionID}", h.handleWebSocket)
}

type inboundEvent struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

type submitEvent struct {
	Message string `json:"message"`
}

type inputEvent struct {
	Input string `json:"input"`
}

type viewportEvent struct {
	Width int `json:"width"`
}

type outgoingEvent struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.widgetSvc.GetSession(sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[widget-ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[widget-ws] connection opened for session=%s", sessionID)

	// Replay the transcript so a reconnecting shell starts from the full log.
	if messages, err := h.widgetSvc.Transcript(sessionID); err == nil {
		h.send(conn, sessionID, "transcript", map[string]any{"messages": messages})
	}

	for {
		var event inboundEvent
		if err := conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[widget-ws] read failed for session=%s: %v", sessionID, err)
			}
			return
		}

		h.dispatch(r.Context(), conn, sessionID, event)
	}
}

func (h *WebSocketHandler) dispatch(ctx context.Context, conn *websocket.Conn, sessionID string, event inboundEvent) {
	switch event.Type {
	case "submit":
		var payload submitEvent
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			h.sendError(conn, sessionID, "invalid submit payload")
			return
		}

		// Empty input and submits while pending are no-ops by contract; the
		// shell gets told either way and the log stays untouched.
		botMsg, err := h.widgetSvc.Submit(ctx, sessionID, payload.Message)
		if err != nil {
			h.sendError(conn, sessionID, err.Error())
			return
		}
		h.send(conn, sessionID, "message", botMsg)

	case "clear":
		seeded, err := h.widgetSvc.Clear(sessionID)
		if err != nil {
			h.sendError(conn, sessionID, err.Error())
			return
		}
		h.send(conn, sessionID, "cleared", seeded)

	case "input":
		var payload inputEvent
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			h.sendError(conn, sessionID, "invalid input payload")
			return
		}
		if err := h.widgetSvc.SetInput(sessionID, payload.Input); err != nil {
			h.sendError(conn, sessionID, err.Error())
		}

	case "open", "close", "toggle_fullscreen":
		var visibility widgetservice.Visibility
		var err error
		switch event.Type {
		case "open":
			visibility, err = h.widgetSvc.Open(sessionID)
		case "close":
			visibility, err = h.widgetSvc.Close(sessionID)
		default:
			visibility, err = h.widgetSvc.ToggleFullscreen(sessionID)
		}
		if err != nil && !errors.Is(err, widgetservice.ErrNotOpen) {
			h.sendError(conn, sessionID, err.Error())
			return
		}
		h.send(conn, sessionID, "visibility", map[string]widgetservice.Visibility{"visibility": visibility})

	case "viewport":
		var payload viewportEvent
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			h.sendError(conn, sessionID, "invalid viewport payload")
			return
		}
		visibility, err := h.widgetSvc.ObserveViewport(sessionID, payload.Width)
		if err != nil {
			h.sendError(conn, sessionID, err.Error())
			return
		}
		h.send(conn, sessionID, "visibility", map[string]widgetservice.Visibility{"visibility": visibility})

	default:
		h.sendError(conn, sessionID, "unknown event type: "+event.Type)
	}
}

func (h *WebSocketHandler) send(conn *websocket.Conn, sessionID, eventType string, data interface{}) {
	event := outgoingEvent{
		Type:      eventType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := conn.WriteJSON(event); err != nil {
		log.Printf("[widget-ws] write failed for session=%s: %v", sessionID, err)
	}
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, sessionID, message string) {
	h.send(conn, sessionID, "error", map[string]string{"error": message})
}
