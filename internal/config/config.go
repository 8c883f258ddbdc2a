package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Ingest    IngestConfig
	Recommend RecommendConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
	EmbedTopic   string // watermill topic for single-policy re-embeds
}

type AIConfig struct {
	EmbeddingProvider  string // "ollama" or "gemini"
	EmbeddingDimension int
	OllamaBaseURL      string
	OllamaModel        string
	LLMProvider        string // "ollama"
	LLMModel           string // e.g. "llama3", "qwen2.5"
}

// IngestConfig controls the bulk catalog load pipeline.
type IngestConfig struct {
	CSVPath      string
	Workers      int // bounded embedding worker pool
	EmbedTimeout int // seconds, per embedding call
}

// RecommendConfig carries the business tuning values for scoring and
// candidate retrieval. The defaults are the values the catalog was
// calibrated with; they are env-overridable because they are expected to
// be re-tuned without a code change.
type RecommendConfig struct {
	TopN               int
	CandidateLimit     int // over-fetch before scoring so post-filtering cannot starve results
	AgeWeight          float64
	GoalWeight         float64
	RiskWeight         float64
	CompletenessWeight float64
	CacheTTLSeconds    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
			EmbedTopic:   getEnv("EMBED_POLICY_TOPIC_NAME", "EMBED_POLICY"),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 384),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			LLMProvider:        getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:           getEnv("LLM_MODEL", "llama3"),
		},
		Ingest: IngestConfig{
			CSVPath:      getEnv("POLICY_CSV_PATH", "data/policies.csv"),
			Workers:      getEnvAsInt("INGEST_WORKERS", 4),
			EmbedTimeout: getEnvAsInt("EMBED_TIMEOUT_SECONDS", 30),
		},
		Recommend: RecommendConfig{
			TopN:               getEnvAsInt("RECOMMEND_TOP_N", 3),
			CandidateLimit:     getEnvAsInt("VECTOR_SEARCH_CANDIDATES", 100),
			AgeWeight:          getEnvAsFloat("SCORE_AGE_WEIGHT", 40),
			GoalWeight:         getEnvAsFloat("SCORE_GOAL_WEIGHT", 30),
			RiskWeight:         getEnvAsFloat("SCORE_RISK_WEIGHT", 20),
			CompletenessWeight: getEnvAsFloat("SCORE_COMPLETENESS_WEIGHT", 10),
			CacheTTLSeconds:    getEnvAsInt("RECOMMEND_CACHE_TTL_SECONDS", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
