package contract

import (
	"context"
	"errors"

	"intellichat-be/internal/entity"
)

// ErrDuplicateUser is returned by Create when the username is already
// taken. The create-on-first-reference path treats it as "already
// exists, use the existing row".
var ErrDuplicateUser = errors.New("user already exists")

type UserRepository interface {
	// Create returns ErrDuplicateUser when the username exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns (nil, nil) when no user matches.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}
