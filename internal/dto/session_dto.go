package dto

import (
	"time"

	"github.com/google/uuid"
)

type SessionResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId string    `json:"sessionId"`
	UserId    string    `json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateSessionRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
	UserId    string `json:"userId" validate:"required"`
	Title     string `json:"title" validate:"required"`
}

type UpdateSessionRequest struct {
	Title string `json:"title" validate:"required"`
}
