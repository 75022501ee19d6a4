package memory

import (
	"context"
	"sync"
	"time"

	"intellichat-be/internal/entity"
	"intellichat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const userKeyPrefix = "user:"

type UserRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewUserRepository() contract.UserRepository {
	return &UserRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.cache.Get(userKeyPrefix + user.Username); found {
		return contract.ErrDuplicateUser
	}

	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	stored := *user
	r.cache.Set(userKeyPrefix+user.Username, &stored, cache.NoExpiration)
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(userKeyPrefix + username); found {
		c := *x.(*entity.User)
		return &c, nil
	}
	return nil, nil
}
