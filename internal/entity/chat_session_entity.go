package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession groups the messages of one conversation. SessionId is the
// client-generated token; Id is the database row key.
type ChatSession struct {
	Id        uuid.UUID
	SessionId string
	UserId    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
