package events

import (
	"time"

	"github.com/google/uuid"
)

const ChatExchangeCompletedType = "CHAT_EXCHANGE_COMPLETED"

// NewChatExchangeCompleted records one finished user/assistant exchange.
func NewChatExchangeCompleted(sessionId, userId string, userMessageId, aiMessageId uuid.UUID) Event {
	return BaseEvent{
		Type: ChatExchangeCompletedType,
		Data: map[string]interface{}{
			"session_id":      sessionId,
			"user_id":         userId,
			"user_message_id": userMessageId.String(),
			"ai_message_id":   aiMessageId.String(),
		},
		OccurredAt: time.Now(),
	}
}
