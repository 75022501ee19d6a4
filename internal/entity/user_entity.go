package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the minimal local identity record. Real identity comes from the
// external provider; rows here exist so messages always reference a known
// user, created on first reference and never mutated afterwards.
type User struct {
	Id           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
