package bootstrap

import (
	"context"
	"log"
	"time"

	"insurance-advisor-be/internal/config"
	"insurance-advisor-be/internal/controller"
	"insurance-advisor-be/internal/pkg/logger"
	"insurance-advisor-be/internal/repository/unitofwork"
	"insurance-advisor-be/internal/service"
	"insurance-advisor-be/pkg/embedding"
	"insurance-advisor-be/pkg/llm/factory"
	"insurance-advisor-be/pkg/recommend"

	pktNats "insurance-advisor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PolicyController         controller.IPolicyController
	RecommendationController controller.IRecommendationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	CatalogWorker   service.ICatalogWorker
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 4. Services
	embedTimeout := time.Duration(cfg.Ingest.EmbedTimeout) * time.Second

	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
		embedTimeout,
	)

	recommendCfg := recommendConfig(cfg)
	recommendationService := service.NewRecommendationService(
		uowFactory,
		embeddingProvider,
		recommendCfg,
		sysLogger,
		rdb,
		time.Duration(cfg.Recommend.CacheTTLSeconds)*time.Second,
		embedTimeout,
	)

	advisorService := service.NewAdvisorService(recommendationService, llmProvider, sysLogger)
	policyService := service.NewPolicyService(uowFactory, publisherService, natsPub, sysLogger)

	ingestionService := service.NewIngestionService(
		uowFactory,
		embeddingProvider,
		natsPub,
		sysLogger,
		cfg.Ingest.Workers,
		embedTimeout,
	)

	catalogWorker := service.NewCatalogWorker(natsSub, ingestionService, cfg.Ingest.CSVPath, sysLogger)
	if natsSub != nil {
		if err := catalogWorker.Start(); err != nil {
			log.Printf("[WARN] Failed to start catalog worker: %v", err)
		}
	}

	// 5. Controllers
	return &Container{
		PolicyController:         controller.NewPolicyController(policyService),
		RecommendationController: controller.NewRecommendationController(recommendationService, advisorService),

		ConsumerService: consumerService,
		CatalogWorker:   catalogWorker,
	}
}

// recommendConfig merges the env-tunable weights onto the built-in keyword
// and phrase tables.
func recommendConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.TopN = cfg.Recommend.TopN
	rc.CandidateLimit = cfg.Recommend.CandidateLimit
	rc.AgeWeight = cfg.Recommend.AgeWeight
	rc.GoalWeight = cfg.Recommend.GoalWeight
	rc.RiskWeight = cfg.Recommend.RiskWeight
	rc.CompletenessWeight = cfg.Recommend.CompletenessWeight
	return rc
}
