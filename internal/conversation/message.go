package conversation

import (
	"fmt"
	"strings"
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
	}
	return false
}

// Message is one turn of a conversation as exchanged with callers.
type Message struct {
	Role    Role   `json:"role" binding:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// Turn is a new user message plus the history the caller already holds.
type Turn struct {
	Message string
	History []Message
}

// Result is the assistant reply and the extended history.
type Result struct {
	Response string
	History  []Message
}

// ValidationError reports a turn rejected before any provider call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (t Turn) validate() error {
	if strings.TrimSpace(t.Message) == "" {
		return &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	for i, m := range t.History {
		if !m.Role.Valid() {
			return &ValidationError{
				Field:  fmt.Sprintf("conversationHistory[%d].role", i),
				Reason: fmt.Sprintf("unknown role %q", m.Role),
			}
		}
	}
	return nil
}
