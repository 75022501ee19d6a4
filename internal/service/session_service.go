package service

import (
	"context"
	"errors"

	"intellichat-be/internal/dto"
	"intellichat-be/internal/entity"
	"intellichat-be/internal/repository"
	"intellichat-be/internal/repository/contract"

	"github.com/google/uuid"
)

type ISessionService interface {
	GetSessions(ctx context.Context, userId string) ([]*dto.SessionResponse, error)
	CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	UpdateSession(ctx context.Context, sessionId, title string) error
}

type sessionService struct {
	repos repository.Factory
}

func NewSessionService(repos repository.Factory) ISessionService {
	return &sessionService{repos: repos}
}

func (ss *sessionService) GetSessions(ctx context.Context, userId string) ([]*dto.SessionResponse, error) {
	sessions, err := ss.repos.ChatSessionRepository().FindAll(ctx, userId)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, sessionToResponse(s))
	}
	return response, nil
}

// CreateSession pre-creates a session before any message is sent. A
// duplicate sessionId is not a failure: the existing row is returned, so
// exactly one session exists per token either way.
func (ss *sessionService) CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	session := &entity.ChatSession{
		Id:        uuid.New(),
		SessionId: request.SessionId,
		UserId:    request.UserId,
		Title:     request.Title,
	}

	err := ss.repos.ChatSessionRepository().Create(ctx, session)
	if err != nil {
		if !errors.Is(err, contract.ErrDuplicateSession) {
			return nil, err
		}
		existing, findErr := ss.repos.ChatSessionRepository().FindBySessionId(ctx, request.SessionId)
		if findErr != nil {
			return nil, findErr
		}
		session = existing
	}

	return sessionToResponse(session), nil
}

func (ss *sessionService) UpdateSession(ctx context.Context, sessionId, title string) error {
	return ss.repos.ChatSessionRepository().UpdateTitle(ctx, sessionId, title)
}

func sessionToResponse(s *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        s.Id,
		SessionId: s.SessionId,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
