package bootstrap

import (
	"context"
	"log"
	"time"

	"cv-chatbot-be/internal/config"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/internal/controller"
	"cv-chatbot-be/internal/pkg/logger"
	"cv-chatbot-be/internal/pkg/mailer"
	"cv-chatbot-be/internal/repository/unitofwork"
	"cv-chatbot-be/internal/service"
	"cv-chatbot-be/pkg/audit"
	"cv-chatbot-be/pkg/embedding"
	"cv-chatbot-be/pkg/llm/factory"
	"cv-chatbot-be/pkg/rag/dispatch"
	"cv-chatbot-be/pkg/rag/intent"
	"cv-chatbot-be/pkg/rag/prompt"
	"cv-chatbot-be/pkg/rag/search"
	"cv-chatbot-be/pkg/rag/session"
	"cv-chatbot-be/pkg/skills"
	"cv-chatbot-be/pkg/speech"
	"cv-chatbot-be/pkg/timeline"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const sessionTTL = 2 * time.Hour

type Container struct {
	// Controllers
	ChatbotController  controller.IChatbotController
	SpeechController   controller.ISpeechController
	ProfileController  controller.IProfileController
	FeedbackController controller.IFeedbackController

	// Background Services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.FeedbackInbox,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	auditPublisher := audit.NewPublisher(pubSub, cfg.App.AuditTopic)

	// 3. Embedding providers, one per supported dimension
	embeddingRegistry := embedding.NewRegistry()
	embeddingRegistry.Register(constant.EmbeddingDim768,
		embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.Embedding768Model))
	embeddingRegistry.Register(constant.EmbeddingDim1024,
		embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.Embedding1024Model))

	// 4. Completion provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		constant.DefaultModel,
		cfg.Ai.CortexBaseURL,
		cfg.Ai.CortexAPIKey,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.LLMProvider)

	// 5. Session store
	var sessionStore session.Store
	if cfg.App.SessionBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionStore = session.NewRedisStore(rdb, sessionTTL)
		log.Println("[INFO] Using Session Backend: REDIS")
	} else {
		sessionStore = session.NewMemoryStore(sessionTTL)
		log.Println("[INFO] Using Session Backend: MEMORY")
	}

	// 6. Profile documents
	skillsCatalog, err := skills.Load(cfg.Profile.SkillsPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load skills document: %v", err)
	}
	careerTimeline, err := timeline.Load(cfg.Profile.TimelinePath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load timeline document: %v", err)
	}

	// 7. RAG pipeline
	ragLogger := logger.NewIsolatedLogger("logs/rag.log")
	dispatcher := dispatch.NewDispatcher(
		intent.NewClassifier(llmProvider),
		search.NewRetriever(llmProvider, embeddingRegistry, service.NewSnippetSearcher(uowFactory)),
		prompt.NewBuilder(skillsCatalog.CompactSummary()),
		llmProvider,
		auditPublisher,
		ragLogger,
	)

	// 8. Speech
	speechProvider := speech.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Speech.VoiceID, cfg.Speech.SpeakingRate, cfg.Speech.Language)

	// 9. Services
	chatbotService := service.NewChatbotService(sessionStore, dispatcher, uowFactory, sysLogger)
	speechService := service.NewSpeechService(speechProvider, speechProvider, chatbotService, sysLogger)
	profileService := service.NewProfileService(skillsCatalog, careerTimeline)
	feedbackService := service.NewFeedbackService(emailService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.App.AuditTopic, uowFactory, sysLogger)

	// 10. Controllers
	return &Container{
		ChatbotController:  controller.NewChatbotController(chatbotService),
		SpeechController:   controller.NewSpeechController(speechService),
		ProfileController:  controller.NewProfileController(profileService),
		FeedbackController: controller.NewFeedbackController(feedbackService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
