package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Ai       AIConfig
	Voice    VoiceConfig
	Quota    QuotaConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type TelegramConfig struct {
	Token string
}

type AIConfig struct {
	Provider  string // "openai" (OpenAI-compatible API) or "ollama"
	BaseURL   string // e.g. https://api.avalai.ir/v1
	APIKey    string
	Model     string
	OllamaURL string
}

type VoiceConfig struct {
	TranscriptionURL   string
	TranscriptionToken string
	MaxChunkBytes      int
	MaxAttempts        int
}

// QuotaConfig holds the usage ceilings. The exact numbers are deployment
// configuration, not business constants.
type QuotaConfig struct {
	ChatMonthlyCap int
	CopyDailyCap   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		Ai: AIConfig{
			Provider:  getEnv("LLM_PROVIDER", "openai"),
			BaseURL:   getEnv("LLM_BASE_URL", "https://api.avalai.ir/v1"),
			APIKey:    getEnv("LLM_API_KEY", ""),
			Model:     getEnv("LLM_MODEL", "gpt-4o-mini"),
			OllamaURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Voice: VoiceConfig{
			TranscriptionURL:   getEnv("TRANSCRIPTION_URL", "https://www.iotype.com/developer/transcription"),
			TranscriptionToken: getEnv("TRANSCRIPTION_TOKEN", ""),
			MaxChunkBytes:      getEnvAsInt("TRANSCRIPTION_MAX_CHUNK_BYTES", 3*1024*1024),
			MaxAttempts:        getEnvAsInt("TRANSCRIPTION_MAX_ATTEMPTS", 3),
		},
		Quota: QuotaConfig{
			ChatMonthlyCap: getEnvAsInt("CHAT_MONTHLY_CAP", 400),
			CopyDailyCap:   getEnvAsInt("COPY_DAILY_CAP", 4),
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
