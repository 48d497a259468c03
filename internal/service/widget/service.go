// Package widget owns the chat widget state machine: the per-session
// message log, visibility modes, the pending-reply guard, and the fallback
// path that keeps the conversation alive when the relay fails.
package widget

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/movix/backend/internal/model/chat"
	"github.com/movix/backend/internal/service/fallback"
)

// Visibility is the widget layout mode.
type Visibility string

const (
	VisibilityClosed     Visibility = "closed"
	VisibilityDocked     Visibility = "open-docked"
	VisibilityFullscreen Visibility = "open-fullscreen"
)

// fullscreenExitWidth is the viewport width (logical pixels) at or above
// which fullscreen is force-exited.
const fullscreenExitWidth = 768

// relayWindow bounds the conversation history carried to the relay.
const relayWindow = 10

const greeting = "Hello! I am MovieBot, your AI assistant from Movix. I can help you find movies and TV shows, provide recommendations, or answer entertainment-related questions. How can I assist you today?"

const clearGreeting = "Hello! I am MovieBot, your AI assistant from Movix. How can I assist you today?"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrReplyPending    = errors.New("a reply is already pending")
	ErrNotOpen         = errors.New("widget is not open")
)

// Responder produces one bot reply for a user message plus its conversation
// window. The AI service implements it in production.
type Responder interface {
	Respond(ctx context.Context, history []chat.Message, userMessage string) (string, error)
}

// Session is a read-only snapshot of one widget session.
type Session struct {
	ID         string     `json:"id"`
	Visibility Visibility `json:"visibility"`
	Input      string     `json:"input"`
	Pending    bool       `json:"pending"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type session struct {
	id         string
	visibility Visibility
	input      string
	pending    bool
	messages   []chat.Message
	createdAt  time.Time
}

// Service manages widget sessions in process memory. Nothing survives a
// restart; every session starts from the seeded greeting.
type Service struct {
	mu        sync.RWMutex
	sessions  map[string]*session
	responder Responder
}

// NewService bootstraps the in-memory widget service. A nil responder is
// allowed: every submit then takes the fallback path.
func NewService(responder Responder) *Service {
	return &Service{
		sessions:  make(map[string]*session),
		responder: responder,
	}
}

// CreateSession provisions a closed widget seeded with the greeting message.
func (s *Service) CreateSession() Session {
	sess := &session{
		id:         uuid.NewString(),
		visibility: VisibilityClosed,
		messages:   []chat.Message{newMessage(chat.RoleBot, greeting)},
		createdAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess.snapshot()
}

// Submit runs one request cycle: the user message is appended immediately,
// the responder is called once with the bounded window, and exactly one bot
// message (real or fallback) is appended when the call settles. Empty input
// and submits while a reply is pending are rejected before any state
// changes.
func (s *Service) Submit(ctx context.Context, sessionID, text string) (chat.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return chat.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return chat.Message{}, ErrSessionNotFound
	}
	if sess.pending {
		s.mu.Unlock()
		return chat.Message{}, ErrReplyPending
	}

	// The window carries the history as it stood before this turn; the new
	// user message travels separately as the query.
	window := chat.Window(sess.messages, relayWindow)

	userMsg := newMessage(chat.RoleUser, trimmed)
	sess.messages = append(sess.messages, userMsg)
	sess.input = ""
	sess.pending = true
	s.mu.Unlock()

	reply := s.resolveReply(ctx, sessionID, window, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	botMsg := newMessage(chat.RoleBot, reply)
	if sess, ok := s.sessions[sessionID]; ok {
		sess.messages = append(sess.messages, botMsg)
		sess.pending = false
	}

	return botMsg, nil
}

// resolveReply asks the responder and degrades to a canned reply on any
// failure, so the caller always receives bot text.
func (s *Service) resolveReply(ctx context.Context, sessionID string, window []chat.Message, userMessage string) string {
	if s.responder == nil {
		return fallback.Reply(userMessage)
	}

	reply, err := s.responder.Respond(ctx, window, userMessage)
	if err != nil {
		log.Printf("[widget] relay failed for session=%s, using fallback: %v", sessionID, err)
		return fallback.Reply(userMessage)
	}

	return reply
}

// Clear atomically resets the session to a single seeded greeting and
// empties the input buffer. Callers never observe a partially cleared log.
func (s *Service) Clear(sessionID string) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	seeded := newMessage(chat.RoleBot, clearGreeting)
	sess.messages = []chat.Message{seeded}
	sess.input = ""

	return seeded, nil
}

// Transcript returns a copy of the session's message log in append order.
func (s *Service) Transcript(sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(sess.messages))
	copy(copied, sess.messages)
	return copied, nil
}

// GetSession returns a snapshot of the session state.
func (s *Service) GetSession(sessionID string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess.snapshot(), nil
}

// SetInput stores the draft input buffer. The buffer survives close/reopen;
// only submit and clear empty it.
func (s *Service) SetInput(sessionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	sess.input = text
	return nil
}

// Open moves a closed widget to the docked layout.
func (s *Service) Open(sessionID string) (Visibility, error) {
	return s.transition(sessionID, func(sess *session) {
		if sess.visibility == VisibilityClosed {
			sess.visibility = VisibilityDocked
		}
	})
}

// Close hides the widget. The input buffer is deliberately left intact.
func (s *Service) Close(sessionID string) (Visibility, error) {
	return s.transition(sessionID, func(sess *session) {
		sess.visibility = VisibilityClosed
	})
}

// ToggleFullscreen switches between the docked and fullscreen layouts.
// Fullscreen is only reachable from the docked state.
func (s *Service) ToggleFullscreen(sessionID string) (Visibility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}

	switch sess.visibility {
	case VisibilityDocked:
		sess.visibility = VisibilityFullscreen
	case VisibilityFullscreen:
		sess.visibility = VisibilityDocked
	default:
		return sess.visibility, ErrNotOpen
	}

	return sess.visibility, nil
}

// ObserveViewport applies the responsive rule: at or above 768 logical
// pixels fullscreen is exited regardless of how it was entered.
func (s *Service) ObserveViewport(sessionID string, width int) (Visibility, error) {
	return s.transition(sessionID, func(sess *session) {
		if width >= fullscreenExitWidth && sess.visibility == VisibilityFullscreen {
			sess.visibility = VisibilityDocked
		}
	})
}

func (s *Service) transition(sessionID string, apply func(*session)) (Visibility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	apply(sess)
	return sess.visibility, nil
}

func (sess *session) snapshot() Session {
	return Session{
		ID:         sess.id,
		Visibility: sess.visibility,
		Input:      sess.input,
		Pending:    sess.pending,
		CreatedAt:  sess.createdAt,
	}
}

func newMessage(role chat.Role, content string) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
