package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"intellichat-be/internal/entity"
	"intellichat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const sessionKeyPrefix = "sess:"

type ChatSessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewChatSessionRepository() contract.ChatSessionRepository {
	return &ChatSessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *ChatSessionRepository) Create(ctx context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKeyPrefix + session.SessionId
	if _, found := r.cache.Get(key); found {
		return contract.ErrDuplicateSession
	}

	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = now
	}

	stored := *session
	r.cache.Set(key, &stored, cache.NoExpiration)
	return nil
}

func (r *ChatSessionRepository) FindBySessionId(ctx context.Context, sessionId string) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionKeyPrefix + sessionId); found {
		c := *x.(*entity.ChatSession)
		return &c, nil
	}
	return nil, nil
}

func (r *ChatSessionRepository) FindAll(ctx context.Context, userId string) ([]*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sessions []*entity.ChatSession
	for key, item := range r.cache.Items() {
		if !strings.HasPrefix(key, sessionKeyPrefix) {
			continue
		}
		s := item.Object.(*entity.ChatSession)
		if userId != "" && s.UserId != userId {
			continue
		}
		c := *s
		sessions = append(sessions, &c)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

func (r *ChatSessionRepository) UpdateTitle(ctx context.Context, sessionId, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKeyPrefix + sessionId
	x, found := r.cache.Get(key)
	if !found {
		return nil
	}

	s := *x.(*entity.ChatSession)
	s.Title = title
	s.UpdatedAt = time.Now()
	r.cache.Set(key, &s, cache.NoExpiration)
	return nil
}

func (r *ChatSessionRepository) Touch(ctx context.Context, sessionId string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKeyPrefix + sessionId
	x, found := r.cache.Get(key)
	if !found {
		return nil
	}

	s := *x.(*entity.ChatSession)
	s.UpdatedAt = at
	r.cache.Set(key, &s, cache.NoExpiration)
	return nil
}
