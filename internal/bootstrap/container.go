package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-copychat-be/internal/config"
	"ai-copychat-be/internal/controller"
	"ai-copychat-be/internal/pkg/logger"
	"ai-copychat-be/internal/repository/implementation"
	"ai-copychat-be/internal/service"
	"ai-copychat-be/internal/telegram"
	"ai-copychat-be/pkg/idempotency"
	"ai-copychat-be/pkg/llm/factory"
	"ai-copychat-be/pkg/transcribe"
	"ai-copychat-be/pkg/transcribe/iotype"

	pktNats "ai-copychat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	VoiceController    controller.IVoiceController
	CopyController     controller.ICopyController
	TelegramController controller.ITelegramController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	userRepo := implementation.NewUserRepository(db)
	sessionRepo := implementation.NewChatSessionRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)
	noteRepo := implementation.NewNoteRepository(db)
	chunkRepo := implementation.NewNoteChunkRepository(db)
	copyRequestRepo := implementation.NewCopyRequestRepository(db)
	usageEventRepo := implementation.NewUsageEventRepository(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (optional; audit events still land in Postgres without it)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// Redis-backed webhook dedup, with an in-process fallback
	var dedup idempotency.Store
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory dedup", err)
		dedup = idempotency.NewMemoryStore()
	} else {
		dedup = idempotency.NewRedisStore(rdb, "tg:update")
	}

	// 3. Services
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
		cfg.Ai.OllamaURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	transcriber := iotype.NewIoTypeProvider(cfg.Voice.TranscriptionURL, cfg.Voice.TranscriptionToken)
	assembler := transcribe.NewAssembler(transcriber, cfg.Voice.MaxAttempts, time.Second)

	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(pubSub, usageEventRepo, natsPub)

	usageService := service.NewUsageService(userRepo, sessionRepo, cfg.Quota.ChatMonthlyCap)
	chatService := service.NewChatService(sessionRepo, messageRepo, usageService, llmProvider, publisherService, sysLogger)
	noteService := service.NewNoteService(noteRepo, chunkRepo, usageService, publisherService, sysLogger)
	dispatcherService := service.NewDispatcherService(usageService, chatService, noteService, sysLogger)
	copyService := service.NewCopyService(usageService, copyRequestRepo, llmProvider, cfg.Quota.CopyDailyCap, sysLogger)
	voiceService := service.NewVoiceService(assembler, llmProvider, usageService, chatService, noteService, cfg.Voice.MaxChunkBytes, sysLogger)

	// 3.5 Telegram adapter
	bot, err := telegram.NewBot(cfg.Telegram.Token, dispatcherService, voiceService, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Telegram bot: %v", err)
	}

	// 4. Controllers
	return &Container{
		ChatController:     controller.NewChatController(dispatcherService, chatService, usageService),
		VoiceController:    controller.NewVoiceController(voiceService),
		CopyController:     controller.NewCopyController(copyService),
		TelegramController: controller.NewTelegramController(bot, dedup, sysLogger),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
