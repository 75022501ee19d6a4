package bootstrap

import (
	"log"
	"time"

	"intellichat-be/internal/config"
	"intellichat-be/internal/constant"
	"intellichat-be/internal/controller"
	"intellichat-be/internal/identity"
	"intellichat-be/internal/pkg/logger"
	"intellichat-be/internal/repository"
	"intellichat-be/internal/service"
	"intellichat-be/pkg/llm/factory"
	pktNats "intellichat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MessageController controller.IMessageController
	SessionController controller.ISessionController
	AuthController    controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// StoreMode is "postgres" or "memory", reported by the health route.
	StoreMode string
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Storage: Postgres when a DSN is configured, in-memory otherwise.
	// Both sides implement the same contract; nothing downstream branches
	// on the mode.
	var repos repository.Factory
	storeMode := "memory"
	if db != nil {
		repos = repository.NewGormFactory(db)
		storeMode = "postgres"
	} else {
		repos = repository.NewMemoryFactory()
		log.Printf("[INFO] No database configured, using in-memory store")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional; chat works without the outbound event feed.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. LLM Provider
	llmProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
		time.Duration(cfg.Ai.TimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 4. Identity Provider (selected once, never branched on per call)
	var identityProvider identity.Provider
	if cfg.Auth.Provider == "google" {
		identityProvider = identity.NewGoogleProvider(
			cfg.Auth.GoogleClientID,
			cfg.Auth.GoogleClientSecret,
			cfg.Auth.GoogleRedirectURL,
		)
		log.Printf("[INFO] Using Identity Provider: GOOGLE")
	} else {
		identityProvider = identity.NewStubProvider()
		log.Printf("[INFO] Using Identity Provider: STUB (demo mode)")
	}

	// 5. Services
	publisherService := service.NewPublisherService(constant.ChatActivityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.ChatActivityTopic, natsPub, sysLogger)

	userService := service.NewUserService(repos)
	authService := service.NewAuthService(identityProvider, userService, cfg.Auth.JWTSecret)
	sessionService := service.NewSessionService(repos)
	chatService := service.NewChatService(
		repos,
		llmProvider,
		userService,
		publisherService,
		cfg.Ai.HistoryWindow,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		MessageController: controller.NewMessageController(chatService),
		SessionController: controller.NewSessionController(sessionService),
		AuthController:    controller.NewAuthController(authService, cfg.Auth.Provider),

		ConsumerService: consumerService,
		StoreMode:       storeMode,
	}
}
