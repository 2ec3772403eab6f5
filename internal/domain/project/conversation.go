package project

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

type Turn struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Role      Role
	Text      string
	Ordinal   int
	CreatedAt time.Time
}

// Conversation is an ordered, append-only log of turns.
type Conversation []Turn

// Append returns a new conversation with the turn added; c is left untouched.
func (c Conversation) Append(role Role, text string) Conversation {
	out := make(Conversation, len(c), len(c)+1)
	copy(out, c)
	return append(out, Turn{Role: role, Text: text, Ordinal: len(c) + 1})
}

// Dialogue drops system turns.
func (c Conversation) Dialogue() Conversation {
	out := make(Conversation, 0, len(c))
	for _, t := range c {
		if t.Role == RoleSystem {
			continue
		}
		out = append(out, t)
	}
	return out
}
