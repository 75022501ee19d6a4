package contract

import (
	"context"

	"intellichat-be/internal/entity"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error

	// FindAll returns messages ordered by timestamp ascending. An empty
	// sessionId returns every message in the store (legacy unscoped mode).
	FindAll(ctx context.Context, sessionId string) ([]*entity.ChatMessage, error)

	// DeleteBySessionId is idempotent; clearing an absent session is not
	// an error.
	DeleteBySessionId(ctx context.Context, sessionId string) error
	DeleteAll(ctx context.Context) error
}
