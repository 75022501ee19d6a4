package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content   string    `gorm:"type:text;not null"`
	Role      string    `gorm:"type:varchar(50);not null"`
	UserId    string    `gorm:"type:text;not null;index"`
	SessionId string    `gorm:"type:text;not null;index"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "messages"
}
