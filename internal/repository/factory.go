package repository

import (
	"intellichat-be/internal/repository/contract"
	"intellichat-be/internal/repository/implementation"
	"intellichat-be/internal/repository/memory"

	"gorm.io/gorm"
)

// Factory hands out the store-backed repositories. The exchange flow is
// deliberately not transactional: a user message must survive a failed
// completion call, so each repository write stands alone.
type Factory interface {
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	UserRepository() contract.UserRepository
}

type gormFactory struct {
	db *gorm.DB
}

func NewGormFactory(db *gorm.DB) Factory {
	return &gormFactory{db: db}
}

func (f *gormFactory) ChatSessionRepository() contract.ChatSessionRepository {
	return implementation.NewChatSessionRepository(f.db)
}

func (f *gormFactory) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(f.db)
}

func (f *gormFactory) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(f.db)
}

type memoryFactory struct {
	sessions contract.ChatSessionRepository
	messages contract.ChatMessageRepository
	users    contract.UserRepository
}

// NewMemoryFactory backs the repositories with the in-memory store, used
// when no database connection string is configured.
func NewMemoryFactory() Factory {
	return &memoryFactory{
		sessions: memory.NewChatSessionRepository(),
		messages: memory.NewChatMessageRepository(),
		users:    memory.NewUserRepository(),
	}
}

func (f *memoryFactory) ChatSessionRepository() contract.ChatSessionRepository {
	return f.sessions
}

func (f *memoryFactory) ChatMessageRepository() contract.ChatMessageRepository {
	return f.messages
}

func (f *memoryFactory) UserRepository() contract.UserRepository {
	return f.users
}
