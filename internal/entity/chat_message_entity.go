package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole is a closed enumeration. The public API only ever accepts
// RoleUser; RoleAssistant rows are written by the chat service after a
// completed model call.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type ChatMessage struct {
	Id        uuid.UUID
	Content   string
	Role      MessageRole
	UserId    string
	SessionId string
	Timestamp time.Time
}
