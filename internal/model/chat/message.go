package chat

import "time"

// Role identifies which party produced a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ParseRole validates a role tag received on the wire. Anything that is not
// "user" belongs to the bot side, mirroring how the relay folds unknown
// history tags into the assistant role.
func ParseRole(raw string) Role {
	if raw == string(RoleUser) {
		return RoleUser
	}
	return RoleBot
}

// Message captures a single turn in a widget conversation. Messages are
// immutable once created; ordering is the append order of the session log.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// HistoryEntry is the wire form of one conversation window entry as the
// relay receives it.
type HistoryEntry struct {
	Role    string `json:"type"`
	Content string `json:"content"`
}

// Window returns the most recent n messages, oldest dropped first, relative
// order preserved. The returned slice is a copy.
func Window(messages []Message, n int) []Message {
	if n <= 0 || len(messages) == 0 {
		return nil
	}
	if len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	copied := make([]Message, len(messages))
	copy(copied, messages)
	return copied
}
