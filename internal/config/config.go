package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Backends BackendConfig
	Ai       AIConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UseRedisCache      bool
}

// BackendConfig holds the base URLs of the microservices the agents call.
type BackendConfig struct {
	Booking      string
	Slot         string
	Passage      string
	Audit        string
	Analytics    string
	History      string
	ServiceToken string // token the consumer uses when the user token is gone
}

type AIConfig struct {
	Enabled           bool
	LLMProvider       string // "ollama" or "groq"
	LLMModel          string
	OllamaBaseURL     string
	GroqAPIKey        string
	GroqBaseURL       string
	ClassifyTimeout   time.Duration
	ClassifyThreshold float64
}

type ChatConfig struct {
	TurnTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UseRedisCache:      getEnvAsBool("USE_REDIS_CACHE", false),
		},
		Backends: BackendConfig{
			Booking:      getEnv("BOOKING_SERVICE_URL", "http://localhost:8081"),
			Slot:         getEnv("SLOT_SERVICE_URL", "http://localhost:8082"),
			Passage:      getEnv("PASSAGE_SERVICE_URL", "http://localhost:8083"),
			Audit:        getEnv("AUDIT_SERVICE_URL", "http://localhost:8084"),
			Analytics:    getEnv("ANALYTICS_SERVICE_URL", "http://localhost:8085"),
			History:      getEnv("HISTORY_SERVICE_URL", "http://localhost:8086"),
			ServiceToken: getEnv("BACKEND_SERVICE_TOKEN", ""),
		},
		Ai: AIConfig{
			Enabled:           getEnvAsBool("AI_CLASSIFIER_ENABLED", false),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:       getEnv("GROQ_BASE_URL", ""),
			ClassifyTimeout:   getEnvAsDuration("AI_CLASSIFY_TIMEOUT", 6*time.Second),
			ClassifyThreshold: getEnvAsFloat("AI_CLASSIFY_THRESHOLD", 0.45),
		},
		Chat: ChatConfig{
			TurnTopic: getEnv("CHAT_TURN_TOPIC_NAME", "CHAT_TURN_COMPLETED"),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
