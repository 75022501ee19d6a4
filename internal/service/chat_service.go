package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"intellichat-be/internal/constant"
	"intellichat-be/internal/dto"
	"intellichat-be/internal/entity"
	"intellichat-be/internal/pkg/logger"
	"intellichat-be/internal/pkg/serverutils"
	"intellichat-be/internal/repository"
	"intellichat-be/internal/repository/contract"
	"intellichat-be/pkg/chat/contextwindow"
	"intellichat-be/pkg/events"
	"intellichat-be/pkg/llm"

	"github.com/google/uuid"
)

// IChatService defines the message-exchange surface
type IChatService interface {
	SendMessage(ctx context.Context, request *dto.CreateMessageRequest) (*dto.CreateMessageResponse, error)
	GetMessages(ctx context.Context, sessionId string) ([]*dto.MessageResponse, error)
	ClearMessages(ctx context.Context, sessionId string) error
}

type chatService struct {
	repos            repository.Factory
	llmProvider      llm.Provider
	userService      IUserService
	publisherService IPublisherService
	builder          *contextwindow.Builder
	log              logger.ILogger

	// Per-session append lock: two concurrent sends against the same
	// session serialize, so the second one's context includes the first
	// exchange.
	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

// sessionLock is reference-counted so entries can be evicted: sessionIds
// are client-generated and unbounded, so the map must not grow for the
// life of the process.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewChatService(
	repos repository.Factory,
	llmProvider llm.Provider,
	userService IUserService,
	publisherService IPublisherService,
	historyWindow int,
	log logger.ILogger,
) IChatService {
	return &chatService{
		repos:            repos,
		llmProvider:      llmProvider,
		userService:      userService,
		publisherService: publisherService,
		builder:          contextwindow.NewBuilder(historyWindow),
		log:              log,
		locks:            make(map[string]*sessionLock),
	}
}

func (cs *chatService) acquireSessionLock(sessionId string) *sessionLock {
	cs.locksMu.Lock()
	l, ok := cs.locks[sessionId]
	if !ok {
		l = &sessionLock{}
		cs.locks[sessionId] = l
	}
	l.refs++
	cs.locksMu.Unlock()

	l.mu.Lock()
	return l
}

func (cs *chatService) releaseSessionLock(sessionId string, l *sessionLock) {
	l.mu.Unlock()

	cs.locksMu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(cs.locks, sessionId)
	}
	cs.locksMu.Unlock()
}

// SendMessage persists the user turn, lazily creates the owning session,
// builds the context window, calls the model and persists the reply. If
// the completion fails the user message stays persisted — the client sees
// a send it can retry.
func (cs *chatService) SendMessage(ctx context.Context, request *dto.CreateMessageRequest) (*dto.CreateMessageResponse, error) {
	if entity.MessageRole(request.Role) != entity.RoleUser {
		return nil, serverutils.NewValidationError("only user messages can be sent")
	}

	lock := cs.acquireSessionLock(request.SessionId)
	defer cs.releaseSessionLock(request.SessionId, lock)

	if _, err := cs.userService.EnsureUser(ctx, request.UserId); err != nil {
		return nil, err
	}

	now := time.Now()
	userMessage := &entity.ChatMessage{
		Id:        uuid.New(),
		Content:   request.Content,
		Role:      entity.RoleUser,
		UserId:    request.UserId,
		SessionId: request.SessionId,
		Timestamp: now,
	}
	if err := cs.repos.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	if err := cs.ensureSession(ctx, request, now); err != nil {
		return nil, err
	}

	history, err := cs.repos.ChatMessageRepository().FindAll(ctx, request.SessionId)
	if err != nil {
		return nil, err
	}

	transcript := cs.builder.Build(history, userMessage.Id)
	transcript = append(transcript, llm.Message{
		Role:    string(entity.RoleUser),
		Content: request.Content,
	})

	reply, err := cs.llmProvider.Chat(ctx, transcript)
	if err != nil {
		cs.log.Error("chat", "completion call failed", map[string]interface{}{
			"session_id": request.SessionId,
			"error":      err.Error(),
		})
		return nil, err
	}

	aiMessage := &entity.ChatMessage{
		Id:        uuid.New(),
		Content:   reply,
		Role:      entity.RoleAssistant,
		UserId:    request.UserId,
		SessionId: request.SessionId,
		Timestamp: time.Now(),
	}
	if err := cs.repos.ChatMessageRepository().Create(ctx, aiMessage); err != nil {
		return nil, err
	}

	if cs.publisherService != nil {
		ev := events.NewChatExchangeCompleted(request.SessionId, request.UserId, userMessage.Id, aiMessage.Id)
		if err := cs.publisherService.Publish(ctx, ev); err != nil {
			cs.log.Warn("chat", "failed to publish exchange event", map[string]interface{}{
				"session_id": request.SessionId,
				"error":      err.Error(),
			})
		}
	}

	return &dto.CreateMessageResponse{
		UserMessage: messageToResponse(userMessage),
		AiMessage:   messageToResponse(aiMessage),
	}, nil
}

// ensureSession creates the session row on first message; a concurrent
// create of the same sessionId is treated as "already exists, continue".
func (cs *chatService) ensureSession(ctx context.Context, request *dto.CreateMessageRequest, now time.Time) error {
	sessions := cs.repos.ChatSessionRepository()

	existing, err := sessions.FindBySessionId(ctx, request.SessionId)
	if err != nil {
		return err
	}
	if existing != nil {
		// Keep recency ordering honest.
		return sessions.Touch(ctx, request.SessionId, now)
	}

	session := &entity.ChatSession{
		Id:        uuid.New(),
		SessionId: request.SessionId,
		UserId:    request.UserId,
		Title:     deriveTitle(request.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sessions.Create(ctx, session); err != nil {
		if errors.Is(err, contract.ErrDuplicateSession) {
			return nil
		}
		return err
	}
	return nil
}

func (cs *chatService) GetMessages(ctx context.Context, sessionId string) ([]*dto.MessageResponse, error) {
	messages, err := cs.repos.ChatMessageRepository().FindAll(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, messageToResponse(m))
	}
	return response, nil
}

func (cs *chatService) ClearMessages(ctx context.Context, sessionId string) error {
	if sessionId == "" {
		return cs.repos.ChatMessageRepository().DeleteAll(ctx)
	}
	return cs.repos.ChatMessageRepository().DeleteBySessionId(ctx, sessionId)
}

func messageToResponse(m *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        m.Id,
		Content:   m.Content,
		Role:      string(m.Role),
		UserId:    m.UserId,
		SessionId: m.SessionId,
		Timestamp: m.Timestamp,
	}
}

// deriveTitle truncates the first user message into a session title.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= constant.SessionTitleMaxLen {
		return content
	}
	return string(runes[:constant.SessionTitleMaxLen]) + "..."
}
