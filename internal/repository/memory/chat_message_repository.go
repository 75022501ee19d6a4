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

const messageKeyPrefix = "msgs:"

// ChatMessageRepository is the no-database fallback store. It implements
// the same contract as the GORM repository so the service layer never
// branches on the storage mode.
type ChatMessageRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewChatMessageRepository() contract.ChatMessageRepository {
	return &ChatMessageRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *ChatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirror the database defaults.
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	key := messageKeyPrefix + message.SessionId
	var msgs []*entity.ChatMessage
	if x, found := r.cache.Get(key); found {
		msgs = x.([]*entity.ChatMessage)
	}

	stored := *message
	msgs = append(msgs, &stored)
	r.cache.Set(key, msgs, cache.NoExpiration)
	return nil
}

func (r *ChatMessageRepository) FindAll(ctx context.Context, sessionId string) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var msgs []*entity.ChatMessage
	if sessionId != "" {
		if x, found := r.cache.Get(messageKeyPrefix + sessionId); found {
			msgs = append(msgs, x.([]*entity.ChatMessage)...)
		}
	} else {
		for key, item := range r.cache.Items() {
			if strings.HasPrefix(key, messageKeyPrefix) {
				msgs = append(msgs, item.Object.([]*entity.ChatMessage)...)
			}
		}
	}

	out := make([]*entity.ChatMessage, len(msgs))
	for i, m := range msgs {
		c := *m
		out[i] = &c
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *ChatMessageRepository) DeleteBySessionId(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(messageKeyPrefix + sessionId)
	return nil
}

func (r *ChatMessageRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.cache.Items() {
		if strings.HasPrefix(key, messageKeyPrefix) {
			r.cache.Delete(key)
		}
	}
	return nil
}
