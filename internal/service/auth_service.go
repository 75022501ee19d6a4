package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"intellichat-be/internal/dto"
	"intellichat-be/internal/identity"

	"github.com/golang-jwt/jwt/v5"
)

type IAuthService interface {
	GetLoginURL() (*dto.LoginURLResponse, error)
	HandleCallback(ctx context.Context, code string) (*dto.LoginResponse, error)
}

type authService struct {
	provider    identity.Provider
	userService IUserService
	jwtSecret   string
}

func NewAuthService(provider identity.Provider, userService IUserService, jwtSecret string) IAuthService {
	return &authService{
		provider:    provider,
		userService: userService,
		jwtSecret:   jwtSecret,
	}
}

func (s *authService) GetLoginURL() (*dto.LoginURLResponse, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	state := base64.URLEncoding.EncodeToString(b)

	url, err := s.provider.LoginURL(state)
	if err != nil {
		return nil, err
	}
	return &dto.LoginURLResponse{URL: url}, nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	account, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	if _, err := s.userService.EnsureUser(ctx, account.UID); err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		"user_id": account.UID,
		"email":   account.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		User:  account,
		Token: signed,
	}, nil
}
