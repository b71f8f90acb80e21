package model

import "time"

// Message roles as sent to the inference provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in the conversation history.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// NewMessage creates a message stamped with the current time.
func NewMessage(role, content string) Message {
	return Message{Role: role, Content: content, Timestamp: time.Now()}
}
