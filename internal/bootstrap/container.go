package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"ai-portgate-be/internal/client"
	"ai-portgate-be/internal/config"
	"ai-portgate-be/internal/controller"
	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/internal/repository/contract"
	"ai-portgate-be/internal/repository/memory"
	redisRepo "ai-portgate-be/internal/repository/redis"
	"ai-portgate-be/internal/service"
	"ai-portgate-be/pkg/agent"
	"ai-portgate-be/pkg/assistant"
	"ai-portgate-be/pkg/intent"
	"ai-portgate-be/pkg/llm/factory"
	pktNats "ai-portgate-be/pkg/nats"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Conversation cache: Redis when configured, in-memory otherwise
	var conversations contract.IConversationRepository
	if cfg.App.UseRedisCache {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory cache", err)
			conversations = memory.NewConversationRepository()
		} else {
			conversations = redisRepo.NewConversationRepository(rdb)
		}
	} else {
		conversations = memory.NewConversationRepository()
	}

	// 3. Backend clients
	bookingClient := client.NewBookingClient(cfg.Backends.Booking)
	slotClient := client.NewSlotClient(cfg.Backends.Slot)
	passageClient := client.NewPassageClient(cfg.Backends.Passage)
	auditClient := client.NewAuditClient(cfg.Backends.Audit)
	analyticsClient := client.NewAnalyticsClient(cfg.Backends.Analytics)
	historyClient := client.NewHistoryClient(cfg.Backends.History)

	// 4. Agent registry
	registry := agent.NewRegistry(sysLogger)
	registry.MustRegister(intent.Help, agent.HelpAgent{})
	registry.MustRegister(intent.Smalltalk, agent.SmalltalkAgent{})
	registry.MustRegister(intent.Unknown, agent.UnknownAgent{})
	registry.MustRegister(intent.BookingStatus, agent.NewBookingStatusAgent(bookingClient))
	registry.MustRegister(intent.BookingCreate, agent.NewBookingCreateAgent(bookingClient, slotClient))
	registry.MustRegister(intent.SlotAvailability, agent.NewSlotAvailabilityAgent(slotClient))
	registry.MustRegister(intent.SlotRecommend, agent.NewSlotRecommendAgent(slotClient))
	registry.MustRegister(intent.PassageHistory, agent.NewPassageHistoryAgent(passageClient))
	registry.MustRegister(intent.BlockchainAudit, agent.NewBlockchainAuditAgent(auditClient))
	registry.MustRegister(intent.OperatorAnalytics, agent.NewOperatorAnalyticsAgent(analyticsClient))

	// 5. Classifier (optional LLM path)
	var classifier *assistant.Classifier
	if cfg.Ai.Enabled {
		llmProvider, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			llmBaseURL(cfg),
			cfg.Ai.GroqAPIKey,
		)
		if err != nil {
			log.Printf("[WARN] Failed to initialize LLM Provider, classifier disabled: %v", err)
		} else {
			classifier = assistant.NewClassifier(llmProvider, cfg.Ai.ClassifyTimeout, cfg.Ai.ClassifyThreshold, sysLogger)
			log.Printf("[INFO] Using LLM Classifier: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
		}
	}

	orchestrator := assistant.NewOrchestrator(classifier, registry, sysLogger)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Chat.TurnTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Chat.TurnTopic,
		historyClient,
		natsPub,
		cfg.Backends.ServiceToken,
	)
	chatService := service.NewChatService(
		orchestrator,
		historyClient,
		conversations,
		publisherService,
		sysLogger,
	)

	// 7. Controllers
	chatController := controller.NewChatController(chatService)

	return &Container{
		ChatController:  chatController,
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "groq" {
		return cfg.Ai.GroqBaseURL
	}
	return cfg.Ai.OllamaBaseURL
}
