package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"intellichat-be/internal/entity"
	"intellichat-be/internal/repository"
	"intellichat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	require.NoError(t, database.Migrate(gormDB))

	// Verify Wiring
	repos := repository.NewGormFactory(gormDB)
	assert.NotNil(t, repos.ChatSessionRepository())
	assert.NotNil(t, repos.ChatMessageRepository())
	assert.NotNil(t, repos.UserRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	ctx := context.Background()
	sessionId := "it-" + uuid.NewString()
	userId := "it-user-" + uuid.NewString()

	t.Run("Check Session Round Trip", func(t *testing.T) {
		session := &entity.ChatSession{
			Id:        uuid.New(),
			SessionId: sessionId,
			UserId:    userId,
			Title:     "Integration session",
		}
		require.NoError(t, repos.ChatSessionRepository().Create(ctx, session))

		found, err := repos.ChatSessionRepository().FindBySessionId(ctx, sessionId)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Integration session", found.Title)
	})

	t.Run("Check Duplicate Session Translates", func(t *testing.T) {
		err := repos.ChatSessionRepository().Create(ctx, &entity.ChatSession{
			Id:        uuid.New(),
			SessionId: sessionId,
			UserId:    userId,
			Title:     "Duplicate",
		})
		assert.Error(t, err)
	})

	t.Run("Check Message Round Trip And Cleanup", func(t *testing.T) {
		msg := &entity.ChatMessage{
			Id:        uuid.New(),
			Content:   "integration hello",
			Role:      entity.RoleUser,
			UserId:    userId,
			SessionId: sessionId,
			Timestamp: time.Now(),
		}
		require.NoError(t, repos.ChatMessageRepository().Create(ctx, msg))

		msgs, err := repos.ChatMessageRepository().FindAll(ctx, sessionId)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "integration hello", msgs[0].Content)

		require.NoError(t, repos.ChatMessageRepository().DeleteBySessionId(ctx, sessionId))

		msgs, err = repos.ChatMessageRepository().FindAll(ctx, sessionId)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}
