package service

import (
	"context"
	"errors"
	"fmt"

	"intellichat-be/internal/entity"
	"intellichat-be/internal/repository"
	"intellichat-be/internal/repository/contract"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	// EnsureUser returns the local user row for the given external uid,
	// creating it on first reference.
	EnsureUser(ctx context.Context, username string) (*entity.User, error)
}

type userService struct {
	repos repository.Factory
}

func NewUserService(repos repository.Factory) IUserService {
	return &userService{repos: repos}
}

func (us *userService) EnsureUser(ctx context.Context, username string) (*entity.User, error) {
	users := us.repos.UserRepository()

	existing, err := users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	// Local rows never authenticate anyone directly; the password is a
	// random throwaway, hashed like a real one.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, user); err != nil {
		// Two first messages from the same user can race here when they
		// target different sessions; the loser picks up the winner's row.
		if errors.Is(err, contract.ErrDuplicateUser) {
			existing, findErr := users.FindByUsername(ctx, username)
			if findErr != nil {
				return nil, findErr
			}
			if existing == nil {
				return nil, fmt.Errorf("user %q reported duplicate but not found", username)
			}
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}
