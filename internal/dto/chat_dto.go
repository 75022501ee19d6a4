package dto

import (
	"time"

	"github.com/google/uuid"
)

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	UserId    string    `json:"userId"`
	SessionId string    `json:"sessionId"`
	Timestamp time.Time `json:"timestamp"`
}

type CreateMessageRequest struct {
	Content   string `json:"content" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=user assistant"`
	UserId    string `json:"userId" validate:"required"`
	SessionId string `json:"sessionId" validate:"required"`
}

// CreateMessageResponse pairs the persisted user turn with the
// assistant's reply.
type CreateMessageResponse struct {
	UserMessage *MessageResponse `json:"userMessage"`
	AiMessage   *MessageResponse `json:"aiMessage"`
}

type StatusResponse struct {
	Message string `json:"message"`
}
